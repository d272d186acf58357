package domain

// CookbookMetadata is what a cookbook declares about itself.
type CookbookMetadata struct {
	// Name is the declared cookbook name, empty if undeclared.
	Name string

	// Version is the declared version, empty if undeclared.
	Version string

	// Dependencies are the declared dependencies in declaration order.
	Dependencies []DependencyRequest
}
