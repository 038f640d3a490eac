package models

// SampleDocuments returns a tiny seed corpus used by the ask CLI demo mode
// and the end-to-end tests.
func SampleDocuments() []Document {
	return []Document{
		{
			ID:      "ml-basics-001",
			Content: "Machine learning is a subset of artificial intelligence that enables systems to learn and improve from experience without being explicitly programmed. It focuses on developing computer programs that can access data and use it to learn for themselves.",
			Source:  "ml_fundamentals.md",
			Metadata: map[string]interface{}{
				"section": "introduction",
				"topic":   "machine learning",
			},
		},
		{
			ID:      "nlp-basics-001",
			Content: "Natural language processing is a branch of artificial intelligence that helps computers understand, interpret and manipulate human language. NLP draws from many disciplines, including computer science and computational linguistics.",
			Source:  "nlp_overview.md",
			Metadata: map[string]interface{}{
				"section": "introduction",
				"topic":   "natural language processing",
			},
		},
		{
			ID:      "vectordb-001",
			Content: "Vector databases store data as high-dimensional vectors and enable fast similarity search. They are the retrieval backbone of modern semantic search and retrieval-augmented generation systems, where documents are embedded and matched against query vectors.",
			Source:  "vector_databases.md",
			Metadata: map[string]interface{}{
				"section": "storage",
				"topic":   "vector databases",
			},
		},
	}
}
