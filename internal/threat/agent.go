package threat

// AgentTokenLimit is the maximum token count for agent-mode responses.
const AgentTokenLimit = 500

// AgentThreat is the compact form of a threat for AI agents
type AgentThreat struct {
	RuleID     string `json:"ruleId"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Mitigation string `json:"mitigation"`
}

// AgentResponse is a token-limited threat list
type AgentResponse struct {
	Methodology       string        `json:"methodology"`
	ThreatCount       int           `json:"threat_count"`
	ThreatsIncluded   int           `json:"threats_included"`
	TokenCount        int           `json:"token_count"`
	TokenLimitReached bool          `json:"token_limit_reached,omitempty"`
	Threats           []AgentThreat `json:"threats"`
}

// BuildAgentResponse packs threats into a response of at most
// AgentTokenLimit tokens. The first threat is always included. A nil
// counter uses the character approximation.
func BuildAgentResponse(threats []Threat, m Methodology, limit int, counter *TokenCounter) AgentResponse {
	if limit <= 0 || limit > len(threats) {
		limit = len(threats)
	}

	result := AgentResponse{
		Methodology: string(m),
		ThreatCount: len(threats),
		Threats:     make([]AgentThreat, 0, limit),
	}

	totalTokens := 0
	for _, t := range threats[:limit] {
		entry := AgentThreat{
			RuleID:     t.RuleID,
			Type:       t.Type,
			Title:      t.Title,
			Mitigation: t.Mitigation,
		}

		entryTokens, err := counter.CountJSON(entry)
		if err != nil {
			continue
		}

		if len(result.Threats) > 0 && totalTokens+entryTokens > AgentTokenLimit {
			result.TokenLimitReached = true
			break
		}

		result.Threats = append(result.Threats, entry)
		totalTokens += entryTokens

		if len(result.Threats) == 1 && totalTokens > AgentTokenLimit {
			result.TokenLimitReached = true
			break
		}
	}

	result.ThreatsIncluded = len(result.Threats)
	result.TokenCount = totalTokens
	return result
}
