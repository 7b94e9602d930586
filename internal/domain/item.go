package domain

// ItemID is the set of identifier types a catalog may use.
type ItemID interface {
	~string | ~int | ~int64
}

// Item is anything a catalog can hand to the scheduler. The payload beyond the
// identifier is only ever inspected by the catalog's own filter predicate.
type Item[ID ItemID] interface {
	ItemID() ID
}

// Custom is implemented by items that can be user-authored. Custom new items
// are introduced before built-in ones.
type Custom interface {
	IsCustom() bool
}

// IsCustom reports whether item is a user-authored item.
func IsCustom(item any) bool {
	c, ok := item.(Custom)
	return ok && c.IsCustom()
}
