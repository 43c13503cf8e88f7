// Package campus holds the static campus building gazetteer and the
// text-matching resolvers for map and routing requests.
package campus

// Building describes one campus building with map metadata.
type Building struct {
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Address     string  `json:"address"`
	Description string  `json:"description"`
	Hours       string  `json:"hours"`
}

var (
	bellLibrary = Building{
		Name:        "Mary and Jeff Bell Library",
		Lat:         27.713788736691168,
		Lng:         -97.32474868648656,
		Address:     "Mary and Jeff Bell Library, TAMUCC",
		Description: "Main library with study spaces and research resources",
		Hours:       "Mon-Fri 7:30am-11pm",
	}
	universityCenter = Building{
		Name:        "University Center (UC)",
		Lat:         27.712071037382053,
		Lng:         -97.3257065414334,
		Address:     "University Center, TAMUCC",
		Description: "Student hub with dining, bookstore, and meeting spaces",
		Hours:       "Mon-Fri 7am-10pm",
	}
	islanderDining = Building{
		Name:        "Islander Dining",
		Lat:         27.711621676963894,
		Lng:         -97.32258737277509,
		Address:     "Islander Dining, TAMUCC",
		Description: "Main dining hall with multiple food stations",
		Hours:       "Daily 7am-9pm",
	}
	naturalResources = Building{
		Name:        "Natural Resources Center (NRC)",
		Lat:         27.715332468715157,
		Lng:         -97.32880933649331,
		Address:     "Natural Resources Center, TAMUCC",
		Description: "Environmental science and research facility",
		Hours:       "Mon-Fri 8am-5pm",
	}
	engineering = Building{
		Name:        "Engineering Building",
		Lat:         27.712772225261283,
		Lng:         -97.32565431063824,
		Address:     "Engineering Building, TAMUCC",
		Description: "College of Engineering classrooms and labs",
		Hours:       "Mon-Fri 8am-6pm",
	}
	corpusChristiHall = Building{
		Name:        "Corpus Christi Hall (CCH)",
		Lat:         27.71516058584113,
		Lng:         -97.32370567166191,
		Address:     "Corpus Christi Hall, TAMUCC",
		Description: "Admissions, financial aid, and student services",
		Hours:       "Mon-Fri 8am-5pm",
	}
	studentServices = Building{
		Name:        "Student Services Center",
		Lat:         27.71374042156452,
		Lng:         -97.32390201020142,
		Address:     "Student Services Center, TAMUCC",
		Description: "Student support services and administration",
		Hours:       "Mon-Fri 8am-5pm",
	}
	bayHall = Building{
		Name:        "Bay Hall",
		Lat:         27.713613491472024,
		Lng:         -97.32348514338884,
		Address:     "Bay Hall, TAMUCC",
		Description: "Business college classrooms and faculty offices",
		Hours:       "Mon-Fri 8am-5pm",
	}
	centerForSciences = Building{
		Name:        "Center for the Sciences",
		Lat:         27.712809298665885,
		Lng:         -97.32486990268086,
		Address:     "Center for the Sciences, TAMUCC",
		Description: "Science labs and classrooms",
		Hours:       "Mon-Fri 8am-6pm",
	}
	education = Building{
		Name:        "College of Education and Human Development",
		Lat:         27.713186318706956,
		Lng:         -97.32428916719182,
		Address:     "College of Education and Human Development, TAMUCC",
		Description: "Education college offices and classrooms",
		Hours:       "Mon-Fri 8am-5pm",
	}
	facultyCenter = Building{
		Name:        "Faculty Center",
		Lat:         27.712820723536026,
		Lng:         -97.32358260567656,
		Address:     "Faculty Center, TAMUCC",
		Description: "Faculty offices and meeting rooms",
		Hours:       "Mon-Fri 8am-5pm",
	}
	duganWellness = Building{
		Name:        "Dugan Wellness Center",
		Lat:         27.711601112024837,
		Lng:         -97.32413753070178,
		Address:     "Dugan Wellness Center, TAMUCC",
		Description: "Student health services and counseling",
		Hours:       "Mon-Fri 8am-5pm",
	}
	collegeOfBusiness = Building{
		Name:        "College of Business",
		Lat:         27.714591440638948,
		Lng:         -97.32466461335527,
		Address:     "College of Business, TAMUCC",
		Description: "College of Business and entrepreneurship programs",
		Hours:       "Mon-Fri 8am-5pm",
	}
	tidalHall = Building{
		Name:        "Tidal Hall",
		Lat:         27.715529412703646,
		Lng:         -97.32710819211944,
		Address:     "Tidal Hall, TAMUCC",
		Description: "Student housing residence hall",
		Hours:       "24/7 for residents",
	}
	harteInstitute = Building{
		Name:        "Harte Research Institute",
		Lat:         27.713459500631362,
		Lng:         -97.32815759566772,
		Address:     "Harte Research Institute, TAMUCC",
		Description: "Gulf of Mexico research and marine science",
		Hours:       "Mon-Fri 8am-5pm",
	}
	counselingCenter = Building{
		Name:        "University Counseling Center",
		Lat:         27.712490577148014,
		Lng:         -97.32168122550681,
		Address:     "University Counseling Center, TAMUCC",
		Description: "Mental health and counseling services for students",
		Hours:       "Mon-Fri 8am-5pm",
	}
)

type aliasEntry struct {
	alias    string
	building *Building
}

// aliases maps lowercase trigger phrases to buildings. Order matters: the
// map resolver returns the FIRST alias contained in the message, so broader
// phrases ("university center") sit before their abbreviations ("uc"), and
// ambiguous short aliases ("dining", "health") resolve the way users expect.
var aliases = []aliasEntry{
	{"library", &bellLibrary},
	{"university center", &universityCenter},
	{"uc", &universityCenter},
	{"dining", &islanderDining},
	{"islander dining", &islanderDining},
	{"natural resources", &naturalResources},
	{"nrc", &naturalResources},
	{"engineering", &engineering},
	{"corpus christi hall", &corpusChristiHall},
	{"cch", &corpusChristiHall},
	{"student services", &studentServices},
	{"bay hall", &bayHall},
	{"sciences", &centerForSciences},
	{"center for sciences", &centerForSciences},
	{"education", &education},
	{"faculty center", &facultyCenter},
	{"wellness", &duganWellness},
	{"dugan", &duganWellness},
	{"health", &duganWellness},
	{"business", &collegeOfBusiness},
	{"tidal hall", &tidalHall},
	{"harte", &harteInstitute},
	{"counseling", &counselingCenter},
	{"counseling center", &counselingCenter},
}

// Buildings returns every distinct building in alias declaration order.
func Buildings() []Building {
	seen := make(map[string]bool, len(aliases))
	out := make([]Building, 0, len(aliases))
	for _, e := range aliases {
		if seen[e.building.Name] {
			continue
		}
		seen[e.building.Name] = true
		out = append(out, *e.building)
	}
	return out
}
