package shape

import "github.com/zeusync/spatial/pkg/spatial"

// Empty has no volume and is never hit.
type Empty struct{}

func (Empty) Collides(spatial.Ray) (Collision, bool) { return Collision{}, false }
func (Empty) Kind() Kind                             { return KindEmpty }
func (Empty) sealed()                                {}
