package models

type ActivityType string

const (
	ActivityUpload   ActivityType = "document_upload"
	ActivitySearch   ActivityType = "document_search"
	ActivityQuestion ActivityType = "question_ask"
	ActivityDelete   ActivityType = "document_delete"
)

// Label is the short tag shown next to an activity.
func (t ActivityType) Label() string {
	switch t {
	case ActivityUpload:
		return "UPLOAD"
	case ActivitySearch:
		return "SEARCH"
	case ActivityQuestion:
		return "QUESTION ASK"
	case ActivityDelete:
		return "DELETE"
	default:
		return "ACTIVITY"
	}
}

type Activity struct {
	Type          ActivityType `json:"type"`
	Description   string       `json:"description"`
	TimeAgo       string       `json:"timeAgo"`
	DocumentTitle *string      `json:"documentTitle"`
}

// DashboardStats is served by GET /dashboard/stats.
type DashboardStats struct {
	TotalDocuments         int        `json:"totalDocuments"`
	RecentDocuments        int        `json:"recentDocuments"`
	SearchAndQuestionCount int        `json:"searchAndQuestionCount"`
	StorageUsed            int64      `json:"storageUsed"`
	RecentActivities       []Activity `json:"recentActivities"`
}
