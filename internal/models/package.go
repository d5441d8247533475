package models

type Package struct {
	Level    PackageLevel `json:"level"`
	Features []string     `json:"features"`
}

// Packages is the service catalog in display order.
var Packages = []Package{
	{Level: PackageBronze, Features: []string{`18" Hood`, `18" Fenders`, "Mirrors"}},
	{Level: PackageSilver, Features: []string{`18" Hood`, `18" Fenders`, "Front Bumper", "Headlights", "Mirrors"}},
	{Level: PackageGold, Features: []string{"Full Hood", "Full Fenders", "Front Bumper", "Headlights", "Mirrors"}},
	{Level: PackagePlatinum, Features: []string{"Full Front End", "Rocker Panels", "A-Pillars", "Roof Strip"}},
	{Level: PackageDiamond, Features: []string{"Full Vehicle Protection"}},
	{Level: PackageCustom, Features: []string{"Tailored to your needs"}},
}

// Valid reports whether p names a package in the catalog.
func (p PackageLevel) Valid() bool {
	for _, pkg := range Packages {
		if pkg.Level == p {
			return true
		}
	}
	return false
}
