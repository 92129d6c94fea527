package world

import "sort"

// Clients is the connection registry: every joined client's view, iterated
// in ascending session order.
// Accessed only from the game loop goroutine.
type Clients struct {
	byID  map[uint64]*ClientView
	order []*ClientView
}

func NewClients() *Clients {
	return &Clients{byID: make(map[uint64]*ClientView)}
}

// Add registers v, replacing any view with the same session id.
func (c *Clients) Add(v *ClientView) {
	if _, ok := c.byID[v.SessionID]; ok {
		c.Remove(v.SessionID)
	}
	c.byID[v.SessionID] = v
	i := sort.Search(len(c.order), func(i int) bool { return c.order[i].SessionID >= v.SessionID })
	c.order = append(c.order, nil)
	copy(c.order[i+1:], c.order[i:])
	c.order[i] = v
}

// Remove drops the view for sessionID and returns it, nil if absent.
func (c *Clients) Remove(sessionID uint64) *ClientView {
	v, ok := c.byID[sessionID]
	if !ok {
		return nil
	}
	delete(c.byID, sessionID)
	for i, o := range c.order {
		if o == v {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return v
}

func (c *Clients) Get(sessionID uint64) *ClientView {
	return c.byID[sessionID]
}

// Contains reports whether v is the registered view for its session.
func (c *Clients) Contains(v *ClientView) bool {
	return v != nil && c.byID[v.SessionID] == v
}

func (c *Clients) Len() int { return len(c.byID) }

// Each visits every view in session order. Views added or removed during the
// walk do not affect it.
func (c *Clients) Each(fn func(*ClientView)) {
	snapshot := make([]*ClientView, len(c.order))
	copy(snapshot, c.order)
	for _, v := range snapshot {
		fn(v)
	}
}
