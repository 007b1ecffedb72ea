package service

// Static fallbacks served when no buyer data exists yet, so dropdowns on
// fresh deployments are never empty.

var defaultOperatorTypes = []string{
	"Tour Operator", "Travel Agent", "Hotel Chain", "Resort Owner", "DMC",
}

var defaultCountries = []string{
	"India", "USA", "UK", "Germany", "France", "Australia", "Canada", "Singapore",
}

var statesByCountry = map[string][]string{
	"India": {
		"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
		"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka",
		"Kerala", "Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya",
		"Mizoram", "Nagaland", "Odisha", "Punjab", "Rajasthan", "Sikkim",
		"Tamil Nadu", "Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand",
		"West Bengal",
	},
	"USA": {
		"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado",
		"Connecticut", "Delaware", "Florida", "Georgia", "Hawaii", "Idaho",
		"Illinois", "Indiana", "Iowa", "Kansas", "Kentucky", "Louisiana",
		"Maine", "Maryland", "Massachusetts", "Michigan", "Minnesota",
		"Mississippi", "Missouri", "Montana", "Nebraska", "Nevada",
		"New Hampshire", "New Jersey", "New Mexico", "New York",
		"North Carolina", "North Dakota", "Ohio", "Oklahoma", "Oregon",
		"Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
		"Tennessee", "Texas", "Utah", "Vermont", "Virginia", "Washington",
		"West Virginia", "Wisconsin", "Wyoming",
	},
	"UK": {
		"England", "Scotland", "Wales", "Northern Ireland",
	},
	"Germany": {
		"Baden-Württemberg", "Bavaria", "Berlin", "Brandenburg", "Bremen",
		"Hamburg", "Hesse", "Lower Saxony", "Mecklenburg-Vorpommern",
		"North Rhine-Westphalia", "Rhineland-Palatinate", "Saarland",
		"Saxony", "Saxony-Anhalt", "Schleswig-Holstein", "Thuringia",
	},
	"France": {
		"Auvergne-Rhône-Alpes", "Bourgogne-Franche-Comté", "Brittany",
		"Centre-Val de Loire", "Corsica", "Grand Est", "Hauts-de-France",
		"Île-de-France", "Normandy", "Nouvelle-Aquitaine", "Occitanie",
		"Pays de la Loire", "Provence-Alpes-Côte d'Azur",
	},
	"Australia": {
		"New South Wales", "Victoria", "Queensland", "Western Australia",
		"South Australia", "Tasmania", "Northern Territory",
		"Australian Capital Territory",
	},
	"Canada": {
		"Alberta", "British Columbia", "Manitoba", "New Brunswick",
		"Newfoundland and Labrador", "Nova Scotia", "Ontario",
		"Prince Edward Island", "Quebec", "Saskatchewan",
		"Northwest Territories", "Nunavut", "Yukon",
	},
	"Singapore": {
		"Central Region", "East Region", "North Region", "North-East Region",
		"West Region",
	},
}
