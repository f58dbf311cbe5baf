// Package cards maintains the bounded, insertion-ordered set of cards on
// screen.
//
// A [Manager] owns at most MaxCards cards. Adding a card when the set is
// full first evicts the oldest one, notifying the [Presenter] before the
// card leaves the set so it can animate the exit. Positions come from a
// [placement.Engine]; when the engine gives up the card is simply not
// added this round.
//
// Posts are handed out round-robin by a [Deck]. The cursor advances on
// every add attempt, whether or not the card could be placed, so a crowded
// layout does not get stuck retrying the same post.
//
//	deck := cards.NewDeck(list)
//	m := cards.NewManager(engine, geometry.Recompute(1200, 800), deck,
//	    cards.WithPresenter(svg), cards.WithMaxCards(8))
//	m.Init(ctx)     // up to min(MaxCards, len(list)) cards
//	m.AddNext(ctx)  // on scroll
//	m.SetParams(geometry.Recompute(1024, 768))
//	m.RelayoutAll(ctx) // on resize
//
// [placement.Engine]: github.com/matzehuels/orbitcards/pkg/placement
package cards
