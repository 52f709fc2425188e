package generator

import "fmt"

// Small identity tables for fake contact data. All picks consume the shared
// rng so the output stays deterministic under a fixed seed.

var firstNames = []string{
	"james", "mary", "robert", "patricia", "john", "jennifer", "michael",
	"linda", "david", "elizabeth", "william", "barbara", "richard", "susan",
	"joseph", "jessica", "thomas", "sarah", "carlos", "maria",
}

var lastNames = []string{
	"smith", "johnson", "williams", "brown", "jones", "garcia", "miller",
	"davis", "rodriguez", "martinez", "hernandez", "lopez", "gonzalez",
	"wilson", "anderson", "thomas", "taylor", "moore", "jackson", "martin",
}

var emailDomains = []string{
	"example.com", "example.org", "example.net", "mail.test", "corp.test",
}

var companyWords = []string{
	"Apex", "Blue", "Cedar", "Delta", "Ember", "Falcon", "Granite", "Harbor",
	"Iron", "Juniper", "Kestrel", "Lumen", "Meridian", "North", "Orchid",
	"Pioneer", "Quartz", "Ridge", "Summit", "Vertex",
}

var companySuffixes = []string{
	"Systems", "Labs", "Group", "Holdings", "Partners", "Solutions",
	"Industries", "Technologies", "Ventures", "Works",
}

var countries = []string{
	"United States", "United Kingdom", "Germany", "France", "Canada",
	"Australia", "Netherlands", "Sweden", "Japan", "Brazil", "India",
	"Spain", "Italy", "Mexico", "Singapore", "Ireland", "Norway",
	"Switzerland", "Poland", "South Korea",
}

func (g *Generator) fakeEmail(n int64) string {
	first := firstNames[g.rng.Intn(len(firstNames))]
	last := lastNames[g.rng.Intn(len(lastNames))]
	domain := emailDomains[g.rng.Intn(len(emailDomains))]
	return fmt.Sprintf("%s.%s%d@%s", first, last, n, domain)
}

func (g *Generator) fakeCompany() string {
	word := companyWords[g.rng.Intn(len(companyWords))]
	suffix := companySuffixes[g.rng.Intn(len(companySuffixes))]
	return fmt.Sprintf("%s %s", word, suffix)
}

func (g *Generator) fakeCountry() string {
	return countries[g.rng.Intn(len(countries))]
}
