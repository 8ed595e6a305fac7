package llmfacade

import "errors"

// ErrEmbedding marks an embedding backend failure. Mirrors
// graphstore.ErrEmbedding; kept as a local sentinel so this package has no
// import-cycle dependency on graphstore.
var ErrEmbedding = errors.New("embedding error")

// ErrLLM marks an LLM call failure. Mirrors graphstore.ErrLLM.
var ErrLLM = errors.New("llm error")

// ErrNoModelsAvailable is returned by BuildFallbackModel when none of the
// requested models could be initialized (no provider had a usable
// API key/endpoint). The Go equivalent of setup_fallback_model's
// "classification_failed_no_models" sentinel string, expressed as a
// regular error instead of a magic string.
var ErrNoModelsAvailable = errors.New("no llm models available")
