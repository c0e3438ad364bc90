package models

// EntityType classifies a government body.
type EntityType string

const (
	EntityMinistry     EntityType = "ministry"
	EntityAuthority    EntityType = "authority"
	EntityCommission   EntityType = "commission"
	EntityDepartment   EntityType = "department"
	EntityDirectorate  EntityType = "directorate"
	EntityMunicipality EntityType = "municipality"
	EntityGovernorate  EntityType = "governorate"
	EntityOther        EntityType = "other"
)

var EntityTypes = []EntityType{
	EntityMinistry, EntityAuthority, EntityCommission, EntityDepartment,
	EntityDirectorate, EntityMunicipality, EntityGovernorate, EntityOther,
}

func (t EntityType) IsValid() bool { return contains(EntityTypes, t) }

// Governorate is one of Iraq's eighteen governorates.
type Governorate string

const (
	Baghdad      Governorate = "baghdad"
	Basra        Governorate = "basra"
	Nineveh      Governorate = "nineveh"
	Erbil        Governorate = "erbil"
	Najaf        Governorate = "najaf"
	Karbala      Governorate = "karbala"
	Wasit        Governorate = "wasit"
	Maysan       Governorate = "maysan"
	Babylon      Governorate = "babylon"
	DhiQar       Governorate = "dhi_qar"
	Anbar        Governorate = "anbar"
	Diyala       Governorate = "diyala"
	Kirkuk       Governorate = "kirkuk"
	SalahAlDin   Governorate = "salah_al_din"
	Sulaymaniyah Governorate = "sulaymaniyah"
	Duhok        Governorate = "duhok"
	Muthanna     Governorate = "muthanna"
	Qadisiyyah   Governorate = "qadisiyyah"
)

var Governorates = []Governorate{
	Baghdad, Basra, Nineveh, Erbil, Najaf, Karbala, Wasit, Maysan, Babylon,
	DhiQar, Anbar, Diyala, Kirkuk, SalahAlDin, Sulaymaniyah, Duhok, Muthanna, Qadisiyyah,
}

func (g Governorate) IsValid() bool { return contains(Governorates, g) }

// FeedbackType classifies a citizen report.
type FeedbackType string

const (
	FeedbackComplaint   FeedbackType = "complaint"
	FeedbackSuggestion  FeedbackType = "suggestion"
	FeedbackInquiry     FeedbackType = "inquiry"
	FeedbackCompliment  FeedbackType = "compliment"
	FeedbackIssueReport FeedbackType = "report"
)

var FeedbackTypes = []FeedbackType{FeedbackComplaint, FeedbackSuggestion, FeedbackInquiry, FeedbackCompliment, FeedbackIssueReport}

func (t FeedbackType) IsValid() bool { return contains(FeedbackTypes, t) }

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func (p Priority) IsValid() bool { return contains(Priorities, p) }

// SubmissionType says which record a ledger entry wraps.
type SubmissionType string

const (
	SubmissionEntity   SubmissionType = "entity"
	SubmissionFeedback SubmissionType = "feedback"
)

func (t SubmissionType) IsValid() bool {
	return t == SubmissionEntity || t == SubmissionFeedback
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
