package ai

// curriculumTopics lists the five modules exam questions are drawn from.
// Questions are distributed proportionally across all modules.
const curriculumTopics = `
Module 1: Foundations of Modern AI
- Evolution of AI vs ML vs Deep Learning
- High-level LLM Architecture (Tokens, Embeddings, Attention)
- Popular LLM Ecosystems (OpenAI GPT, Google Gemini, Meta Llama, Mistral)
- Transformer Architecture fundamentals
- Tokenization (BPE, WordPiece, SentencePiece)

Module 2: Prompt Engineering & Optimization
- Zero-shot & Few-shot prompting techniques
- Chain-of-thought (CoT) prompting
- Role prompting and system instructions
- Handling hallucinations and factuality
- Token limits and context window management
- Temperature, Top-p, and sampling strategies

Module 3: Retrieval-Augmented Generation (RAG)
- RAG Architecture and pipeline design
- Vector Databases (ChromaDB, Pinecone, FAISS)
- Document ingestion and chunking strategies
- Embedding models and vector representations
- Similarity Search (Cosine, Euclidean, Dot Product)

Module 4: Fine-Tuning, Agents & Workflows
- Full fine-tuning vs Parameter-Efficient Fine-Tuning (PEFT)
- LoRA and QLoRA techniques
- Instruction tuning and RLHF
- AI Agents and tool calling
- Function calling and execution
- Multi-step reasoning and agentic workflows

Module 5: Deployment & Responsible AI
- Model deployment and API integration
- Cost optimization and latency management
- AI Safety, Bias, and Ethics
- Model evaluation metrics (BLEU, ROUGE, Perplexity)
- Guardrails and content filtering
`

// difficultyGuides maps exam difficulty to its rubric line. Unrecognized
// values fall back to medium.
var difficultyGuides = map[string]string{
	"easy":   "Basic definitions, recall, and foundational concepts. Straightforward questions.",
	"medium": "Application-based, comparisons, scenario analysis. Tests understanding beyond recall.",
	"hard":   "Advanced scenarios, architecture decisions, edge cases, deep technical reasoning.",
}

func difficultyGuide(difficulty string) string {
	if guide, ok := difficultyGuides[difficulty]; ok {
		return guide
	}
	return difficultyGuides["medium"]
}
