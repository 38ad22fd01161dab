package wizard

// CatalogEntry is one companion library offered during setup. The
// catalog is deliberately short, these are the packages that show up in
// almost every Angular project kickoff.
type CatalogEntry struct {
	// Name is the npm package name
	Name string

	// Description shown next to the name in the picker
	Description string

	// Dev marks packages installed with --save-dev
	Dev bool

	// Preselected entries start checked in the picker
	Preselected bool
}

var libraryCatalog = []CatalogEntry{
	{
		Name:        "@angular/material",
		Description: "Material Design components",
		Preselected: true,
	},
	{
		Name:        "bootstrap",
		Description: "Bootstrap styles and layout utilities",
	},
	{
		Name:        "@ngrx/store",
		Description: "Redux style state management",
	},
	{
		Name:        "ngx-toastr",
		Description: "Toast notifications",
	},
	{
		Name:        "ngx-spinner",
		Description: "Configurable loading indicators",
	},
	{
		Name:        "@auth0/angular-jwt",
		Description: "JWT handling for authenticated APIs",
	},
	{
		Name:        "prettier",
		Description: "Opinionated code formatting",
		Dev:         true,
	},
	{
		Name:        "husky",
		Description: "Git hooks for formatting and linting on commit",
		Dev:         true,
	},
}

// Catalog returns the companion library catalog in display order.
func Catalog() []CatalogEntry {
	entries := make([]CatalogEntry, len(libraryCatalog))
	copy(entries, libraryCatalog)

	return entries
}
