// meta/meta.go
package meta

// MAX_ROUNDS caps the number of proposals in one negotiation.
const MAX_ROUNDS = 40

// MAX_ORDER is the highest theory of mind order offered by the CLI.
const MAX_ORDER = 3

// NUM_GAMES defines the number of games per experiment match-up.
const NUM_GAMES = 30

// COLOR_NAMES labels chip colors in output.
var COLOR_NAMES = []string{"W", "B", "P", "Gry", "Y"}
