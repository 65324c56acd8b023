package domain

var (
	SCORING_CALCULATE_SUCCESS         = "Score calculated"
	SCORING_CALCULATE_FAILED          = "Failed to calculate score"
	SCORING_SESSION_CREATE_SUCCESS    = "Session scored and saved"
	SCORING_SESSION_CREATE_FAILED     = "Failed to save scored session"
	SCORING_SUBMIT_ANSWER_SUCCESS     = "Answer recorded"
	SCORING_SUBMIT_ANSWER_FAILED      = "Failed to record answer"
	SCORING_GET_SESSION_SUCCESS       = "Session retrieved"
	SCORING_GET_SESSION_FAILED        = "Failed to get session"
	SCORING_GET_HISTORY_SUCCESS       = "Score history retrieved"
	SCORING_GET_HISTORY_FAILED        = "Failed to get score history"
	SCORING_GET_PARAMETERS_SUCCESS    = "Scoring parameters retrieved"
	SCORING_UPDATE_PARAMETERS_SUCCESS = "Scoring parameters updated"
	SCORING_UPDATE_PARAMETERS_FAILED  = "Failed to update scoring parameters"

	EMBEDDING_GENERATE_SUCCESS = "Embeddings generated"
	EMBEDDING_GENERATE_FAILED  = "Failed to generate embeddings"
	SIMILARITY_COMPARE_SUCCESS = "Similarity calculated"
	SIMILARITY_COMPARE_FAILED  = "Failed to calculate similarity"
	SIMILARITY_FIND_SUCCESS    = "Similar texts found"
	SIMILARITY_FIND_FAILED     = "Failed to find similar texts"
	SEARCH_SUCCESS             = "Search completed"
	SEARCH_FAILED              = "Search failed"
	CLUSTER_SUCCESS            = "Texts clustered"
	CLUSTER_FAILED             = "Failed to cluster texts"
	DOCUMENT_CREATE_SUCCESS    = "Document saved"
	DOCUMENT_CREATE_FAILED     = "Failed to save document"
	DOCUMENT_LIST_SUCCESS      = "Documents retrieved"
	DOCUMENT_LIST_FAILED       = "Failed to get documents"
)
