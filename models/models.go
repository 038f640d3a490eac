package models

// Vector is a dense embedding of a piece of text.
type Vector []float32

// Intent is the coarse category a query falls into.
type Intent string

const (
	IntentDefinition     Intent = "definition"
	IntentProcedural     Intent = "procedural"
	IntentExplanatory    Intent = "explanatory"
	IntentLocational     Intent = "locational"
	IntentTemporal       Intent = "temporal"
	IntentComparative    Intent = "comparative"
	IntentRecommendation Intent = "recommendation"
	IntentInformational  Intent = "informational"
	IntentError          Intent = "error"
)

// FactCheckStatus labels how well the retrieved sources back the answer.
type FactCheckStatus string

const (
	FactCheckVerified            FactCheckStatus = "verified"
	FactCheckPartiallyVerified   FactCheckStatus = "partially_verified"
	FactCheckSingleSource        FactCheckStatus = "single_source"
	FactCheckInsufficientSources FactCheckStatus = "insufficient_sources"
	FactCheckDisabled            FactCheckStatus = "disabled"
	FactCheckError               FactCheckStatus = "error"
)

// Document is one ingestable unit of content.
type Document struct {
	ID       string                 `json:"id,omitempty"`
	Content  string                 `json:"content"`
	Source   string                 `json:"source"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// SearchResult is one retrieved context chunk. ConfidenceScore is the
// relevance score scaled by a damping factor below 1, so it never exceeds
// RelevanceScore; RelevanceScore itself may exceed 1 after intent boosting.
type SearchResult struct {
	Content         string                 `json:"content"`
	Source          string                 `json:"source"`
	RelevanceScore  float64                `json:"relevance_score"`
	ConfidenceScore float64                `json:"confidence_score"`
	ChunkID         string                 `json:"chunk_id"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}

// Response is the complete answer to one query. It is constructed once per
// Search call and immutable afterwards.
type Response struct {
	SynthesizedAnswer string          `json:"synthesized_answer"`
	SourceResults     []SearchResult  `json:"source_results"`
	ConfidenceScore   float64         `json:"confidence_score"`
	QueryIntent       Intent          `json:"query_intent"`
	FollowUpQuestions []string        `json:"follow_up_questions"`
	FactCheckStatus   FactCheckStatus `json:"fact_check_status"`
	ProcessingTimeMs  float64         `json:"processing_time_ms"`
}

// Metrics is a point-in-time snapshot of engine performance counters.
type Metrics struct {
	QueriesProcessed  int64   `json:"queries_processed"`
	AvgResponseTimeMs float64 `json:"avg_response_time_ms"`
	AvgConfidence     float64 `json:"avg_confidence"`
	CacheHitRate      float64 `json:"cache_hit_rate"`
}
