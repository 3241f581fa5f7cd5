package invariant

// registryDocument is the top-level shape of a registry JSON file.
// Unknown top-level and invariant-level fields are rejected by the
// loader's strict decoder.
type registryDocument struct {
	Version    int                `json:"version"`
	RegistryID string             `json:"registry_id"`
	Status     string             `json:"status,omitempty"`
	Invariants []invariantDefJSON `json:"invariants"`
}

type conditionJSON struct {
	Type       string `json:"type"`
	Expression string `json:"expression"`
}

type invariantDefJSON struct {
	ID          string        `json:"id"`
	Group       string        `json:"group"`
	Scope       string        `json:"scope"`
	Description string        `json:"description"`
	AppliesTo   []string      `json:"applies_to"`
	Condition   conditionJSON `json:"condition"`
	FailureMode string        `json:"failure_mode"`
}
