// Package game implements the round state machine for a single blackjack
// table.
//
// The main type is Game, which owns one State snapshot and moves it through
// the phases waiting, betting, dealing, playing, dealer-turn and settlement.
// Every operation either returns a new snapshot or an error; a failed
// operation leaves the game exactly as it was.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	g, err := game.New(rng, []game.Participant{
//	    game.NewParticipant("alice", "Alice", 1000, nil),
//	})
//	g.StartNewRound()
//	g.PlaceBets(map[string]game.Coin{"alice": 100})
//	g.HandlePlayerAction("alice", game.Stand)
//	g.SettleRound()
//
// # Deterministic Testing
//
// Shuffles draw from the injected *rand.Rand, so a fixed seed replays the
// same cards. For full control pass a stacked deck; its first card is dealt
// first:
//
//	g, _ := game.New(rng, players, game.WithDeck(deck.FromCards(deck.MustParseCards("AhKs9c7d")...)))
//
// # Hidden Information
//
// State keeps the shoe unexported and exposes only its size. Brains and
// renderers receive a View, where the dealer's hole card is masked until
// it is revealed.
package game
