package model

// Category is the two-valued outcome of email triage. Labels are kept in
// Portuguese because they travel verbatim to the caller and into prompts.
type Category string

const (
	// CategoryProductive marks an email that requires an action or a reply.
	CategoryProductive Category = "Produtivo"
	// CategoryUnproductive marks an email that needs no further action.
	CategoryUnproductive Category = "Improdutivo"
)

func (c Category) Valid() bool {
	return c == CategoryProductive || c == CategoryUnproductive
}

func (c Category) String() string {
	return string(c)
}
