package generator

// Fixed name pools. Slice order matters: samplers index into these with
// seeded draws, so reordering a pool changes generated output.

var firstNames = []string{
	"Alex", "Jordan", "Sam", "Taylor", "Morgan", "Casey", "Riley", "Quinn",
	"Avery", "Dana", "Elliot", "Frankie", "Harper", "Jamie", "Kendall",
	"Logan", "Marion", "Noel", "Parker", "Reese", "Sasha", "Toni",
}

var lastNames = []string{
	"Almedia", "Barros", "Costa", "Dvorak", "Eriksen", "Farkas", "Grigore",
	"Hassan", "Ishida", "Jensen", "Kovacs", "Lindqvist", "Moreau", "Novak",
	"Okafor", "Petrov", "Quint", "Rossi", "Santos", "Tanaka", "Ueda", "Vargas",
}

var companyWords = []string{
	"Northwind", "Cascade", "Meridian", "Atlas", "Summit", "Harbor",
	"Pinnacle", "Granite", "Beacon", "Crestline", "Fairview", "Ironwood",
	"Lakeshore", "Monarch", "Oakfield", "Redstone", "Silverline", "Tradewind",
	"Vanguard", "Westgate",
}

var companySuffixes = []string{
	"Trading", "Logistics", "Supply Co", "Distribution", "Retail Group",
	"Wholesale", "Industries", "Partners",
}

var streetNames = []string{
	"Main St", "Oak Ave", "Harbor Blvd", "Mill Rd", "Station Way",
	"Commerce Dr", "Park Lane", "Industrial Pkwy", "Market St", "Depot Rd",
}

var citiesByRegion = map[string][]string{
	"north": {"Northport", "Glacier Falls", "Fjordview", "Pinehaven"},
	"south": {"Southbay", "Palmcrest", "Sunfield", "Bayamar"},
	"east":  {"Easton Mills", "Harborview", "Brickton", "Seacliff"},
	"west":  {"Westridge", "Canyon City", "Gold Meadow", "Dunewood"},
}

var userRoles = map[string]float64{
	"admin":   0.1,
	"manager": 0.3,
	"viewer":  0.6,
}

var companyTiers = map[string]float64{
	"enterprise": 0.15,
	"mid-market": 0.35,
	"small":      0.50,
}

var staffRoles = []string{
	"branch manager", "purchasing lead", "warehouse contact", "accounts payable",
}

var productCategories = []string{
	"beverages", "snacks", "dairy", "frozen", "household", "personal care",
	"bakery", "produce",
}

var productAdjectives = []string{
	"Classic", "Premium", "Family", "Daily", "Fresh", "Golden", "Harvest",
	"Natural", "Select", "Valley",
}

var productNouns = []string{
	"Cola", "Crackers", "Yogurt", "Dumplings", "Detergent", "Shampoo",
	"Sourdough", "Apples", "Coffee", "Granola", "Juice", "Noodles",
}

var carriers = []string{
	"SwiftHaul", "Cardinal Freight", "BlueDart Express", "Ridgeline Couriers",
}

var deliveryFailReasons = []string{
	"recipient unavailable", "address not found", "vehicle breakdown",
	"weather delay", "dock congestion",
}

var cancelReasons = []string{
	"customer request", "payment failure", "out of stock", "duplicate order",
	"pricing error",
}

var returnReasons = []string{
	"damaged in transit", "wrong item shipped", "quality complaint",
	"ordered by mistake", "expired on arrival",
}

var paymentMethods = map[string]float64{
	"bank_transfer": 0.5,
	"card":          0.3,
	"check":         0.2,
}

var discountCodes = []string{
	"WELCOME10", "BULK15", "SEASONAL5", "LOYALTY8", "CLEARANCE20",
}

var technicians = []string{
	"R. Field", "M. Torres", "K. Osei", "J. Lindberg", "A. Demir", "P. Szabo",
}

var maintenanceIssues = []string{
	"cooler unit failure", "POS terminal fault", "shelving repair",
	"freezer thermostat", "door sensor", "lighting circuit",
}
