package main

import "portfolio-api/dto"

var samplePosts = []dto.CreateBlogPostRequest{
	{
		Title:    "Essential API Testing Strategies for Modern Applications",
		Excerpt:  "Functional, security and performance checks that keep a backend honest, and how to fold them into CI.",
		Author:   "Mahmuda Ferdus",
		Category: "API Testing",
		Tags:     []string{"API", "Testing", "Automation", "Best Practices"},
		Status:   "published",
		Content: `APIs carry the business logic of most applications, so they deserve tests of their own.

## Functional testing
Exercise every method the endpoint supports, check request and response shapes, and assert status codes for both the happy path and the error cases.

## Security testing
Cover authentication and authorization, reject malformed or hostile input, and confirm that rate limits hold.

## Performance testing
Measure latency under concurrent load and find the point where the service degrades.

## Habits that pay off
Run the suite on every commit, keep test data realistic, and automate whatever you would otherwise repeat by hand.`,
	},
	{
		Title:    "Mastering Selenium WebDriver: Advanced Techniques",
		Excerpt:  "Page objects, data-driven tests and cross-browser runs for UI suites that stay maintainable.",
		Author:   "Mahmuda Ferdus",
		Category: "Automation",
		Tags:     []string{"Selenium", "WebDriver", "Automation", "Page Object Model"},
		Status:   "published",
		Content: `UI automation gets brittle quickly unless it is structured with care.

## Page objects
Keep locators and page behaviour in one place so a markup change touches a single class.

## Data-driven tests
Separate test data from test steps and run the same scenario over many inputs.

## Cross-browser runs
Run the suite against every browser you support, in parallel where possible.

## Waiting correctly
Prefer explicit waits over fixed sleeps; they are faster and far less flaky.`,
	},
	{
		Title:    "Performance Testing with JMeter: A Complete Guide",
		Excerpt:  "Load, stress and volume testing with Apache JMeter, from test plan to reading the results.",
		Author:   "Mahmuda Ferdus",
		Category: "Performance Testing",
		Tags:     []string{"JMeter", "Performance Testing", "Load Testing", "Optimization"},
		Status:   "published",
		Content: `JMeter is an open-source load generator that speaks HTTP and many other protocols.

## Load testing
Simulate the expected number of users and confirm response times stay within budget.

## Stress testing
Push past normal capacity to find the breaking point and watch how the system recovers.

## Volume testing
Grow the data set to production size and check the database keeps up.

## Reading results
Plan targets before the run, monitor CPU, memory and network during it, and use the reports afterwards.`,
	},
}
