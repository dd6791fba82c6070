package teamnames

// defaultAliases maps alternate spellings seen across upstream endpoints to the display name
// used on game cards. Spellings that only differ by case, punctuation, or accents already share
// a key; entries for those only pick the display name.
var defaultAliases = map[string]string{
	"Mississippi":            "Ole Miss",
	"Miami (FL)":             "Miami",
	"Miami Florida":          "Miami",
	"Miami Ohio":             "Miami (OH)",
	"Southern California":    "USC",
	"Connecticut":            "UConn",
	"Massachusetts":          "UMass",
	"Louisiana Monroe":       "UL Monroe",
	"ULM":                    "UL Monroe",
	"Louisiana Lafayette":    "Louisiana",
	"UL Lafayette":           "Louisiana",
	"Appalachian State":      "App State",
	"North Carolina State":   "NC State",
	"UT San Antonio":         "UTSA",
	"Texas San Antonio":      "UTSA",
	"Central Florida":        "UCF",
	"Southern Methodist":     "SMU",
	"Texas Christian":        "TCU",
	"Brigham Young":          "BYU",
	"Louisiana State":        "LSU",
	"Pitt":                   "Pittsburgh",
	"FIU":                    "Florida International",
	"FAU":                    "Florida Atlantic",
	"Southern Mississippi":   "Southern Miss",
	"Nevada Las Vegas":       "UNLV",
	"Sam Houston State":      "Sam Houston",
	"Texas El Paso":          "UTEP",
	"WKU":                    "Western Kentucky",
	"Middle Tennessee State": "Middle Tennessee",
	"MTSU":                   "Middle Tennessee",
	"Army West Point":        "Army",
	"Hawaii":                 "Hawai'i",
	"San Jose State":         "San José State",
	"Alabama Birmingham":     "UAB",
}
