// Package career is the job board: a fixed catalogue of openings and the
// learner's applications.
package career

// Job is one opening on the board.
type Job struct {
	ID               string
	Title            string
	Company          string
	Location         string
	Description      string
	Responsibilities []string
	Qualifications   []string
	Skills           []string
}

// Catalogue lists the openings in display order.
var Catalogue = []Job{
	{
		ID:          "fe-1",
		Title:       "Frontend Engineer",
		Company:     "Innovatech",
		Location:    "San Francisco, CA (Remote)",
		Description: "Build beautiful and performant user interfaces for a next-generation platform.",
		Responsibilities: []string{
			"Develop new user-facing features using React",
			"Build reusable components and front-end libraries",
			"Translate designs and wireframes into high-quality code",
			"Optimize components for performance across devices and browsers",
		},
		Qualifications: []string{
			"Strong proficiency in JavaScript and the DOM",
			"Thorough understanding of React and its core principles",
			"Experience with state management such as Redux",
			"Familiarity with modern front-end build pipelines",
		},
		Skills: []string{"React", "TypeScript", "JavaScript", "CSS", "HTML"},
	},
	{
		ID:          "be-1",
		Title:       "Backend Engineer",
		Company:     "DataStream",
		Location:    "New York, NY",
		Description: "Design, build and maintain the server side of a high-traffic data processing application.",
		Responsibilities: []string{
			"Design and implement scalable RESTful APIs",
			"Build out the data pipeline with the data science team",
			"Administer databases and scale services under load",
			"Implement security and data protection",
		},
		Qualifications: []string{
			"Proven experience as a backend engineer",
			"Experience with Python, Node.js or Go",
			"Proficient with SQL and NoSQL databases",
			"Knowledge of AWS or Google Cloud",
		},
		Skills: []string{"Python", "Node.js", "Go", "SQL", "AWS"},
	},
	{
		ID:          "pm-1",
		Title:       "Product Manager",
		Company:     "Synergy AI",
		Location:    "Austin, TX",
		Description: "Lead a cross-functional team to conceptualize, build and launch AI-driven features.",
		Responsibilities: []string{
			"Develop and maintain the product roadmap",
			"Gather and prioritize customer requirements",
			"Work with engineering, sales and support on revenue and satisfaction goals",
			"Define the product strategy and vision",
		},
		Qualifications: []string{
			"3+ years of product management, preferably SaaS or AI",
			"A record of defining and launching successful products",
			"Excellent written and verbal communication",
			"A technical background is a plus",
		},
		Skills: []string{"Agile", "Roadmapping", "User Research", "JIRA"},
	},
	{
		ID:          "ds-1",
		Title:       "Data Scientist",
		Company:     "QuantumLeap",
		Location:    "Boston, MA (Hybrid)",
		Description: "Derive insights from large datasets with statistics and machine learning to shape business strategy.",
		Responsibilities: []string{
			"Analyze large datasets to discover trends and patterns",
			"Build predictive models and machine-learning algorithms",
			"Present findings with data visualization",
			"Propose solutions to business challenges",
		},
		Qualifications: []string{
			"Proven experience as a data scientist or analyst",
			"Experience in data mining and machine learning",
			"Strong SQL and Python",
			"Experience with BI tools such as Tableau",
		},
		Skills: []string{"Python", "R", "SQL", "Machine Learning", "Tableau"},
	},
	{
		ID:          "ux-1",
		Title:       "UX/UI Designer",
		Company:     "CreativeMinds",
		Location:    "Remote",
		Description: "Own the design process from user research to final UI for a suite of creative applications.",
		Responsibilities: []string{
			"Conduct user research and evaluate feedback",
			"Create user flows, wireframes, prototypes and mockups",
			"Design for a wide range of devices and interfaces",
			"Collaborate with product and engineering on implementation",
		},
		Qualifications: []string{
			"3+ years of UX/UI design experience",
			"A strong portfolio",
			"Proficiency in Figma, Sketch or Adobe XD",
			"Excellent visual design skills",
		},
		Skills: []string{"Figma", "UI Design", "UX Research", "Prototyping"},
	},
}
