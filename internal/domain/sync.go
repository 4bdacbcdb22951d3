package domain

// SyncResult resume uma execução da sincronização de deals.
// Skipped soma deals já importados e deals sem vendedor mapeado; os dois
// motivos são contados separadamente para diagnóstico.
type SyncResult struct {
	Synced            int `json:"synced"`
	Skipped           int `json:"skipped"`
	Errors            int `json:"errors"`
	RemovedFromSource int `json:"removed_from_source"`

	SkippedExisting int `json:"skipped_existing"`
	SkippedUnmapped int `json:"skipped_unmapped"`
	Restored        int `json:"restored"`
	Throttled       bool `json:"throttled"`
}
