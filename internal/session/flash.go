package session

// Flash queues msg for the next rendered page. It is not persisted until Save.
func (g *Gateway) Flash(msg string) {
	g.s.AddFlash(msg, flashKey)
}

// Flashes pops every queued message. Call Save afterwards so they stay consumed.
func (g *Gateway) Flashes() []string {
	raw := g.s.Flashes(flashKey)
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// FlashAndSave queues msg and persists the session in one step.
func (g *Gateway) FlashAndSave(msg string) error {
	g.Flash(msg)
	return g.Save()
}
