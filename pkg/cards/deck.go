package cards

import "github.com/matzehuels/orbitcards/pkg/posts"

// Deck hands out posts round-robin.
type Deck struct {
	posts  []posts.Post
	cursor int
}

// NewDeck creates a deck over list. The slice is not copied or mutated.
func NewDeck(list []posts.Post) *Deck {
	return &Deck{posts: list}
}

// Next returns the post under the cursor and advances the cursor modulo
// the list length. It returns false for an empty deck.
func (d *Deck) Next() (posts.Post, bool) {
	if len(d.posts) == 0 {
		return posts.Post{}, false
	}
	p := d.posts[d.cursor]
	d.cursor = (d.cursor + 1) % len(d.posts)
	return p, true
}

// Cursor returns the index of the next post.
func (d *Deck) Cursor() int { return d.cursor }

// Len returns the number of posts.
func (d *Deck) Len() int { return len(d.posts) }

// Posts returns the underlying list.
func (d *Deck) Posts() []posts.Post { return d.posts }
