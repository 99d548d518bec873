package categorize

// DefaultRules returns the built-in rule set used when no rule file is
// configured. Priorities are spaced per category so deployments can slot
// custom rules between them.
func DefaultRules() []Rule {
	return []Rule{
		// Groceries
		{Pattern: "COSTCO", Category: "Groceries", Priority: 10, Field: FieldMerchant},
		{Pattern: "WALMART", Category: "Groceries", Priority: 10, Field: FieldMerchant},
		{Pattern: "NO FRILLS", Category: "Groceries", Priority: 10, Field: FieldMerchant},
		{Pattern: "SUPERSTORE", Category: "Groceries", Priority: 10, Field: FieldMerchant},
		{Pattern: "LOBLAWS", Category: "Groceries", Priority: 10, Field: FieldMerchant},
		{Pattern: "SOBEYS", Category: "Groceries", Priority: 10, Field: FieldMerchant},
		{Pattern: "FRESHCO", Category: "Groceries", Priority: 10, Field: FieldMerchant},
		{Pattern: "GROCERY", Category: "Groceries", Priority: 10, Field: FieldDescription},
		{Pattern: "SUPERMARKET", Category: "Groceries", Priority: 10, Field: FieldDescription},

		// Dining
		{Pattern: "STARBUCKS", Category: "Dining", Priority: 20, Field: FieldMerchant},
		{Pattern: "TIM HORTONS", Category: "Dining", Priority: 20, Field: FieldMerchant},
		{Pattern: "MCDONALD", Category: "Dining", Priority: 20, Field: FieldMerchant},
		{Pattern: "SUBWAY", Category: "Dining", Priority: 20, Field: FieldMerchant},
		{Pattern: "KFC", Category: "Dining", Priority: 20, Field: FieldMerchant},
		{Pattern: "PIZZA", Category: "Dining", Priority: 20, Field: FieldMerchant},
		{Pattern: "BURGER KING", Category: "Dining", Priority: 20, Field: FieldMerchant},
		{Pattern: "RESTAURANT", Category: "Dining", Priority: 20, Field: FieldDescription},
		{Pattern: "CAFE", Category: "Dining", Priority: 20, Field: FieldDescription},
		{Pattern: "COFFEE", Category: "Dining", Priority: 20, Field: FieldDescription},

		// Transport
		{Pattern: "UBER", Category: "Transport", Priority: 30, Field: FieldMerchant},
		{Pattern: "LYFT", Category: "Transport", Priority: 30, Field: FieldMerchant},
		{Pattern: "TRANSIT", Category: "Transport", Priority: 30, Field: FieldAny},
		{Pattern: "PRESTO", Category: "Transport", Priority: 30, Field: FieldMerchant},
		{Pattern: "TAXI", Category: "Transport", Priority: 30, Field: FieldDescription},

		// Utilities
		{Pattern: "ROGERS", Category: "Utilities", Priority: 40, Field: FieldMerchant},
		{Pattern: "TELUS", Category: "Utilities", Priority: 40, Field: FieldMerchant},
		{Pattern: "KOODO", Category: "Utilities", Priority: 40, Field: FieldMerchant},
		{Pattern: "HYDRO", Category: "Utilities", Priority: 40, Field: FieldAny},
		{Pattern: "INTERNET", Category: "Utilities", Priority: 40, Field: FieldDescription},
		{Pattern: "UTILITY", Category: "Utilities", Priority: 40, Field: FieldDescription},
		{Pattern: "POWER", Category: "Utilities", Priority: 40, Field: FieldDescription},

		// Fuel & Gas
		{Pattern: "ESSO", Category: "Fuel & Gas", Priority: 50, Field: FieldMerchant},
		{Pattern: "SHELL", Category: "Fuel & Gas", Priority: 50, Field: FieldMerchant},
		{Pattern: "PETRO", Category: "Fuel & Gas", Priority: 50, Field: FieldMerchant},
		{Pattern: "IRVING", Category: "Fuel & Gas", Priority: 50, Field: FieldMerchant},
		{Pattern: "FUEL", Category: "Fuel & Gas", Priority: 50, Field: FieldDescription},
		{Pattern: "GAS STATION", Category: "Fuel & Gas", Priority: 50, Field: FieldDescription},

		// Entertainment
		{Pattern: "NETFLIX", Category: "Entertainment", Priority: 60, Field: FieldMerchant},
		{Pattern: "SPOTIFY", Category: "Entertainment", Priority: 60, Field: FieldMerchant},
		{Pattern: "DISNEY", Category: "Entertainment", Priority: 60, Field: FieldMerchant},
		{Pattern: "PLAYSTATION", Category: "Entertainment", Priority: 60, Field: FieldMerchant},
		{Pattern: "SUBSCRIPTION", Category: "Entertainment", Priority: 60, Field: FieldDescription},
		{Pattern: "STREAM", Category: "Entertainment", Priority: 60, Field: FieldDescription},

		// Pharmacy
		{Pattern: "SHOPPERS DRUG MART", Category: "Pharmacy", Priority: 70, Field: FieldMerchant},
		{Pattern: "REXALL", Category: "Pharmacy", Priority: 70, Field: FieldMerchant},
		{Pattern: "PHARMACY", Category: "Pharmacy", Priority: 70, Field: FieldAny},
		{Pattern: "PRESCRIPTION", Category: "Pharmacy", Priority: 70, Field: FieldDescription},

		// Shopping
		{Pattern: "AMAZON", Category: "Shopping", Priority: 80, Field: FieldMerchant},
		{Pattern: "BEST BUY", Category: "Shopping", Priority: 80, Field: FieldMerchant},
		{Pattern: "CANADIAN TIRE", Category: "Shopping", Priority: 80, Field: FieldMerchant},
		{Pattern: "EBAY", Category: "Shopping", Priority: 80, Field: FieldMerchant},
		{Pattern: "ONLINE ORDER", Category: "Shopping", Priority: 80, Field: FieldDescription},
		{Pattern: "RETAIL", Category: "Shopping", Priority: 80, Field: FieldDescription},

		// Travel
		{Pattern: "AIR CANADA", Category: "Travel", Priority: 90, Field: FieldMerchant},
		{Pattern: "WESTJET", Category: "Travel", Priority: 90, Field: FieldMerchant},
		{Pattern: "EXPEDIA", Category: "Travel", Priority: 90, Field: FieldMerchant},
		{Pattern: "AIRBNB", Category: "Travel", Priority: 90, Field: FieldMerchant},
		{Pattern: "FLIGHT", Category: "Travel", Priority: 90, Field: FieldDescription},
		{Pattern: "HOTEL", Category: "Travel", Priority: 90, Field: FieldDescription},

		// Rent
		{Pattern: "re:^PAD\\s*RENT", Category: "Rent", Priority: 100, Field: FieldDescription},
		{Pattern: "RENT", Category: "Rent", Priority: 100, Field: FieldAny},
		{Pattern: "LEASE", Category: "Rent", Priority: 100, Field: FieldDescription},
		{Pattern: "PROPERTY MGMT", Category: "Rent", Priority: 100, Field: FieldMerchant},

		// Fees
		{Pattern: "BANK FEE", Category: "Fees", Priority: 110, Field: FieldMerchant},
		{Pattern: "NSF", Category: "Fees", Priority: 110, Field: FieldMerchant},
		{Pattern: "SERVICE CHARGE", Category: "Fees", Priority: 110, Field: FieldAny},
		{Pattern: "OVERDRAFT", Category: "Fees", Priority: 110, Field: FieldDescription},
		{Pattern: "SURCHARGE", Category: "Fees", Priority: 110, Field: FieldDescription},

		// Income
		{Pattern: "PAYROLL", Category: "Income", Priority: 120, Field: FieldMerchant},
		{Pattern: "DIRECT DEPOSIT", Category: "Income", Priority: 120, Field: FieldMerchant},
		{Pattern: "GOVERNMENT OF CANADA", Category: "Income", Priority: 120, Field: FieldMerchant},
		{Pattern: "SALARY", Category: "Income", Priority: 120, Field: FieldDescription},
		{Pattern: "PAYCHEQUE", Category: "Income", Priority: 120, Field: FieldDescription},
	}
}
