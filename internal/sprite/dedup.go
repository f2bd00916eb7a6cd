package sprite

// Duplicates records sprites whose pixels repeat an earlier sprite. Aliases
// are keyed by name; they are resolved to the representative's placement
// when output is written.
type Duplicates struct {
	of      map[string]string
	aliases []*Sprite
}

// Representative returns the name of the sprite that name duplicates.
func (d *Duplicates) Representative(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	rep, ok := d.of[name]
	return rep, ok
}

// Aliases returns the duplicate sprites in input order.
func (d *Duplicates) Aliases() []*Sprite {
	if d == nil {
		return nil
	}
	return d.aliases
}

// Len returns the number of duplicates.
func (d *Duplicates) Len() int {
	if d == nil {
		return 0
	}
	return len(d.aliases)
}

type contentKey struct {
	width, height int
	hash          uint64
}

// Dedup splits sprites into the ones to pack and the duplicates of those.
// The first sprite with a given content is its representative. Equal hashes
// are confirmed by comparing pixels.
func Dedup(sprites []*Sprite) ([]*Sprite, *Duplicates) {
	dups := &Duplicates{of: make(map[string]string)}
	buckets := make(map[contentKey][]*Sprite)
	unique := make([]*Sprite, 0, len(sprites))
next:
	for _, s := range sprites {
		key := contentKey{width: s.PackWidth(), height: s.PackHeight(), hash: s.Hash}
		for _, rep := range buckets[key] {
			if SameContent(rep, s) {
				dups.of[s.Name] = rep.Name
				dups.aliases = append(dups.aliases, s)
				continue next
			}
		}
		buckets[key] = append(buckets[key], s)
		unique = append(unique, s)
	}
	return unique, dups
}
