package knowledge

// SeedDocuments is the built-in campus FAQ corpus. It populates a fresh
// Elasticsearch index at startup and backs the in-memory store when no
// cluster is configured.
func SeedDocuments() []Document {
	return []Document{
		{
			Title:    "How to apply for scholarships",
			Category: "Financial Aid",
			URL:      "https://www.tamucc.edu/finaid/scholarships",
			Content:  "Submit the general scholarship application through the student portal. Most awards require a completed FAFSA and an essay.",
		},
		{
			Title:    "Application deadlines for scholarships",
			Category: "Financial Aid",
			URL:      "https://www.tamucc.edu/finaid/deadlines",
			Content:  "The priority deadline for institutional scholarships is February 1. Departmental awards may close earlier.",
		},
		{
			Title:    "GPA needed for freshman admission",
			Category: "Admissions",
			URL:      "https://www.tamucc.edu/admissions/freshman",
			Content:  "Freshman applicants in the top half of their class are automatically admitted. Others are reviewed holistically with GPA and test scores.",
		},
		{
			Title:    "Who is my admissions counselor",
			Category: "Admissions",
			URL:      "https://www.tamucc.edu/admissions/counselors",
			Content:  "Admissions counselors are assigned by the first letter of your last name and by region for out-of-state applicants.",
		},
		{
			Title:    "How to register for classes",
			Category: "Registration",
			URL:      "https://www.tamucc.edu/registrar/registration",
			Content:  "Register through the student portal during your assigned time ticket. Holds must be cleared before registration opens.",
		},
		{
			Title:    "Dropping a class and refund schedule",
			Category: "Registration",
			URL:      "https://www.tamucc.edu/registrar/drops",
			Content:  "Classes dropped before the census date are removed from your record. Refund percentages step down each week of the term.",
		},
		{
			Title:    "Paying tuition and payment plans",
			Category: "Business Office",
			URL:      "https://www.tamucc.edu/business-office/payments",
			Content:  "Tuition can be paid in full or through an installment plan with three payments per semester.",
		},
		{
			Title:    "On-campus housing options",
			Category: "Housing",
			URL:      "https://www.tamucc.edu/housing",
			Content:  "Islander Housing offers residence halls for first-year students and apartment-style living for upperclassmen.",
		},
		{
			Title:    "Campus dining hours and meal plans",
			Category: "Dining",
			URL:      "https://www.tamucc.edu/dining",
			Content:  "Islander Dining in the University Center serves daily from 7 AM to 9 PM. Meal plans are required for residence hall students.",
		},
		{
			Title:    "Library hours and study rooms",
			Category: "Library",
			URL:      "https://library.tamucc.edu",
			Content:  "The Mary and Jeff Bell Library is open 7 AM to midnight on weekdays. Group study rooms can be reserved online.",
		},
		{
			Title:    "Connecting to campus Wi-Fi",
			Category: "Technical Support",
			URL:      "https://it.tamucc.edu/wifi",
			Content:  "Join the IslanderNet network with your university credentials. Gaming consoles register through the device portal.",
		},
		{
			Title:    "Resetting your university password",
			Category: "Technical Support",
			URL:      "https://it.tamucc.edu/password",
			Content:  "Reset passwords through the self-service portal with your enrolled recovery methods, or visit the IT help desk in Corpus Christi Hall.",
		},
		{
			Title:    "Student health services and appointments",
			Category: "Health",
			URL:      "https://www.tamucc.edu/health",
			Content:  "The University Health Center offers medical visits, immunizations, and lab work. Appointments are booked through the patient portal.",
		},
		{
			Title:    "Counseling services for students",
			Category: "Health",
			URL:      "https://www.tamucc.edu/counseling",
			Content:  "The University Counseling Center provides free confidential counseling to enrolled students, including same-day crisis support.",
		},
		{
			Title:    "Parking permits and shuttle routes",
			Category: "Parking",
			URL:      "https://www.tamucc.edu/parking",
			Content:  "Parking permits are purchased online and linked to your license plate. The campus shuttle loops Ocean Drive every 15 minutes.",
		},
		{
			Title:    "Academic advising appointments",
			Category: "Academic",
			URL:      "https://www.tamucc.edu/advising",
			Content:  "Each college has a dedicated advising team. First-year students meet an advisor before registering each semester.",
		},
	}
}
