package interaction

// ToggleResult is the state of a relation after a toggle
type ToggleResult struct {
	Active bool  `json:"active"`
	Count  int64 `json:"count"`
}

// Status is a viewer's relation to a video plus the video's counters
type Status struct {
	IsLiked      bool  `json:"isLiked"`
	IsCollected  bool  `json:"isCollected"`
	LikeCount    int64 `json:"likeCount"`
	CollectCount int64 `json:"collectCount"`
}
