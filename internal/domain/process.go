package domain

// Institution identifies which branch of the CPS portal a source belongs to.
type Institution string

const (
	InstitutionETEC  Institution = "ETEC"
	InstitutionFATEC Institution = "FATEC"
	InstitutionPSSAD Institution = "PSSAD"
)

// ProcessType distinguishes the kinds of selection processes published by CPS.
type ProcessType string

const (
	TypePSS             ProcessType = "PSS"
	TypeCPD             ProcessType = "CPD"
	TypeAuxiliarDocente ProcessType = "AuxiliarDocente"
)

// SourceStatus tells whether a listing page shows open or in-progress processes.
type SourceStatus string

const (
	StatusOpen       SourceStatus = "open"
	StatusInProgress SourceStatus = "in-progress"
)

// Source is one configured listing page; the set is static during a run.
type Source struct {
	Name        string
	URL         string
	Institution Institution
	Type        ProcessType
	Status      SourceStatus
}

// Label renders the human-readable tag carried into alerts and history.
func (s Source) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return string(s.Institution) + " – " + typeLabel(s.Type) + " – " + statusLabel(s.Status)
}

func typeLabel(t ProcessType) string {
	switch t {
	case TypePSS:
		return "Processo Seletivo Docente"
	case TypeCPD:
		return "Concurso Público Docente"
	case TypeAuxiliarDocente:
		return "Auxiliar de Docente"
	}
	return string(t)
}

func statusLabel(s SourceStatus) string {
	switch s {
	case StatusOpen:
		return "Inscrições Abertas"
	case StatusInProgress:
		return "Em Andamento"
	}
	return string(s)
}

// ProcessRecord holds metadata scraped from one process-detail page.
// Records are re-derived each run; the listing pages are the source of truth
// for which processes are currently active.
type ProcessRecord struct {
	DetailURL string
	Edital    string
	Unit      string
	City      string
	Subject   string
	Listing   string
}

// DocumentRef is one PDF/DOCX link found on a process-detail page.
// The URL is the document's identity for deduplication.
type DocumentRef struct {
	URL     string
	Name    string
	Ext     string
	Phase   Phase
	Process *ProcessRecord
}

// HistoryEntry is the persisted record of an already-processed identifier.
// The JSON shape is shared with the original history file: document entries
// fill the scraping fields, DOE entries fill the publication fields.
type HistoryEntry struct {
	Name       string `json:"name,omitempty"`
	Phase      string `json:"phase,omitempty"`
	DetailPage string `json:"detail_page,omitempty"`
	Listing    string `json:"listing,omitempty"`
	Edital     string `json:"edital,omitempty"`
	Unit       string `json:"unidade,omitempty"`
	City       string `json:"cidade,omitempty"`
	Subject    string `json:"disciplina,omitempty"`
	Source     string `json:"source,omitempty"`
	Title      string `json:"title,omitempty"`
	Date       string `json:"date,omitempty"`
	Hierarchy  string `json:"hierarchy,omitempty"`
	URL        string `json:"url,omitempty"`
	Matches    int    `json:"matches,omitempty"`
	NameFound  bool   `json:"found_name"`
}

// DOEKeyPrefix namespaces gazette publication ids inside the history store so
// they never collide with document URLs.
const DOEKeyPrefix = "doe:"

// AlertKind enumerates the notification event types the pipeline can emit.
type AlertKind string

const (
	AlertNameFoundCPS      AlertKind = "name-found-cps"
	AlertNewDocumentNoName AlertKind = "new-document-no-name"
	AlertNameFoundDOE      AlertKind = "name-found-doe"
)

// AlertEvent is a structured notification payload; it is consumed immediately
// by the notifier and never persisted.
type AlertEvent struct {
	Kind     AlertKind
	Document DocumentRef
	DOE      DOEPublication
}

// DOEPublication is one match returned by the DOE SP search API.
type DOEPublication struct {
	ID        string
	Title     string
	Date      string
	Hierarchy string
	Excerpt   string
	URL       string
	Matches   int
}
