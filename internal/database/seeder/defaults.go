package seeder

import "jobpost/internal/usecase"

func Defaults() []Seeder {
	return []Seeder{
		JobsSeeder{Jobs: sampleJobs},
	}
}

var sampleJobs = []usecase.CreateJobInput{
	{
		Title:               "Backend Engineer (Go)",
		Company:             "Northwind Labs",
		Location:            "Jakarta, ID",
		JobType:             "Full-time",
		SalaryRange:         "IDR 25-35M",
		Description:         "Build and maintain Go services backed by PostgreSQL",
		Requirements:        "3+ years of Go, solid SQL",
		Responsibilities:    "Design REST APIs and own their uptime",
		ApplicationDeadline: "2026-12-31",
	},
	{
		Title:               "Frontend Developer",
		Company:             "Blue Harbor",
		Location:            "Remote",
		JobType:             "Contract",
		SalaryRange:         "USD 40-55/h",
		Description:         "Ship the customer dashboard in React",
		Requirements:        "TypeScript, React, testing-library",
		Responsibilities:    "Turn designs into accessible components",
		ApplicationDeadline: "2026-11-15",
	},
	{
		Title:               "Data Analyst",
		Company:             "Kestrel Retail",
		Location:            "Bandung, ID",
		JobType:             "Part-time",
		SalaryRange:         "IDR 8-10M",
		Description:         "Report on sales and inventory trends",
		Requirements:        "SQL, spreadsheets, one BI tool",
		Responsibilities:    "Maintain weekly dashboards",
		ApplicationDeadline: "2026-10-31",
	},
	{
		Title:               "DevOps Intern",
		Company:             "Northwind Labs",
		Location:            "Jakarta, ID",
		JobType:             "Internship",
		SalaryRange:         "IDR 4M",
		Description:         "Help run our CI and container platform",
		Requirements:        "Linux basics, curiosity about Docker",
		Responsibilities:    "Keep pipelines green and document runbooks",
		ApplicationDeadline: "2026-12-01",
	},
}
