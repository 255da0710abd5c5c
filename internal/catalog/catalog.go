// Package catalog holds the static site content: FAQs, branches, knowledge
// topics, trust features and community highlights. The built-in catalog
// mirrors the marketing site; deployments can override it with a YAML
// content pack.
package catalog

import "strings"

// FAQ is one frequently-asked question with its canned answer.
type FAQ struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Branch is a physical branch listing.
type Branch struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
	Phone   string `json:"phone" yaml:"phone"`
}

// Topic is a knowledge-center card.
type Topic struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
}

// TrustFeature is one trust-and-security highlight.
type TrustFeature struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
}

// Discussion is a community discussion teaser.
type Discussion struct {
	Title   string `json:"title" yaml:"title"`
	Author  string `json:"author" yaml:"author"`
	Replies int    `json:"replies" yaml:"replies"`
}

// Highlight is a home-page feature card.
type Highlight struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Catalog is the full static content set served by the content endpoints.
type Catalog struct {
	Tagline     string         `json:"tagline" yaml:"tagline"`
	Highlights  []Highlight    `json:"highlights" yaml:"highlights"`
	FAQs        []FAQ          `json:"faqs" yaml:"faqs"`
	Branches    []Branch       `json:"branches" yaml:"branches"`
	Topics      []Topic        `json:"topics" yaml:"topics"`
	Trust       []TrustFeature `json:"trust" yaml:"trust"`
	Discussions []Discussion   `json:"discussions" yaml:"discussions"`
}

// FindBranches returns branches whose name or address contains the query,
// case-insensitively. The query is meant to hold a city or PIN code; an
// empty query returns every branch.
func (c *Catalog) FindBranches(query string) []Branch {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.Branches
	}
	var matched []Branch
	for _, b := range c.Branches {
		if strings.Contains(strings.ToLower(b.Name), query) ||
			strings.Contains(strings.ToLower(b.Address), query) {
			matched = append(matched, b)
		}
	}
	return matched
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		Tagline: "Your AI-Powered Financial Guide for Smarter Loan Decisions",
		Highlights: []Highlight{
			{"AI Assistant", "Get personalized loan guidance from our intelligent chatbot."},
			{"Budget Planning", "Plan your finances with our smart budget tools."},
			{"Knowledge Base", "Access comprehensive financial resources and guides."},
		},
		FAQs: []FAQ{
			{
				Question: "What is VIVEKA?",
				Answer:   "VIVEKA is an AI-powered loan assistant that helps you understand loan eligibility, compare options, and make informed financial decisions.",
			},
			{
				Question: "How do I check my loan eligibility?",
				Answer:   "Simply start a chat with our AI assistant and provide basic information about your income, credit score, and loan requirements. VIVEKA will guide you through the process.",
			},
			{
				Question: "Is my data secure?",
				Answer:   "Yes, we take data security seriously. All communications are encrypted, and we never share your personal information without consent.",
			},
			{
				Question: "What types of loans can VIVEKA help with?",
				Answer:   "VIVEKA can assist with personal loans, home loans, car loans, education loans, and business loans.",
			},
			{
				Question: "How does the credit score checker work?",
				Answer:   "Our credit score insights help you understand factors affecting your score and provide tips to improve it over time.",
			},
		},
		Branches: []Branch{
			{"Mumbai Central", "123 Business District, Mumbai 400001", "+91 22 1234 5678"},
			{"Delhi NCR", "456 Financial Hub, New Delhi 110001", "+91 11 2345 6789"},
			{"Bangalore Tech Park", "789 IT Corridor, Bangalore 560001", "+91 80 3456 7890"},
		},
		Topics: []Topic{
			{"Understanding Credit Scores", "Learn how credit scores work and what factors affect them.", "📊"},
			{"Loan Types Explained", "Comprehensive guide to different types of loans available.", "📚"},
			{"Interest Rates Guide", "How interest rates are calculated and how to get the best rates.", "💰"},
			{"EMI Calculator Tips", "Calculate and plan your monthly installments effectively.", "🧮"},
			{"Loan Documentation", "Required documents and how to prepare your loan application.", "📋"},
			{"Credit Improvement", "Strategies to improve your credit score over time.", "📈"},
		},
		Trust: []TrustFeature{
			{"Data Encryption", "All your data is encrypted using industry-standard AES-256 encryption.", "🔐"},
			{"Privacy First", "We never sell or share your personal information with third parties.", "🛡️"},
			{"Secure Infrastructure", "Our systems are hosted on secure, certified cloud infrastructure.", "☁️"},
			{"Regulatory Compliance", "We comply with all relevant financial regulations and data protection laws.", "✓"},
		},
		Discussions: []Discussion{
			{"Tips for first-time loan applicants", "FinanceGuru", 24},
			{"How I improved my credit score by 100 points", "CreditChamp", 56},
			{"Best practices for loan repayment", "MoneyWise", 18},
		},
	}
}
