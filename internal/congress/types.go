package congress

// BillSummary is one entry from a bill list or committee-bills
// response. The API returns the bill number as a string.
type BillSummary struct {
	Congress int    `json:"congress"`
	Type     string `json:"type"`
	Number   string `json:"number"`
	Title    string `json:"title"`
}

// Action is one legislative action record.
type Action struct {
	Text       string `json:"text"`
	ActionDate string `json:"actionDate"`
	Type       string `json:"type"`
}

// BillDetail is the core per-bill record.
type BillDetail struct {
	Title          string
	Sponsors       []string
	LatestAction   Action
	IntroducedDate string
	URL            string
}

// VoteTally is a roll-call result with per-party breakdowns for the
// two major parties. Independents count toward the totals only.
type VoteTally struct {
	Yeas    int
	Nays    int
	RepYeas int
	RepNays int
	DemYeas int
	DemNays int
}

type billListResponse struct {
	Bills []BillSummary `json:"bills"`
}

type billDetailResponse struct {
	Bill struct {
		Title    string `json:"title"`
		Sponsors []struct {
			FullName string `json:"fullName"`
		} `json:"sponsors"`
		LatestAction   Action `json:"latestAction"`
		IntroducedDate string `json:"introducedDate"`
		URL            string `json:"url"`
	} `json:"bill"`
}

type actionsResponse struct {
	Actions []Action `json:"actions"`
}

type cosponsorsResponse struct {
	Pagination struct {
		Count int `json:"count"`
	} `json:"pagination"`
}

type subjectsResponse struct {
	Subjects struct {
		LegislativeSubjects []struct {
			Name string `json:"name"`
		} `json:"legislativeSubjects"`
		PolicyArea struct {
			Name string `json:"name"`
		} `json:"policyArea"`
	} `json:"subjects"`
}

type summariesResponse struct {
	Summaries []struct {
		Text string `json:"text"`
	} `json:"summaries"`
}

type committeesResponse struct {
	Committees []struct {
		Name string `json:"name"`
	} `json:"committees"`
}

type rollCallParty struct {
	VoteParty string `json:"voteParty"`
	Party     struct {
		Type string `json:"type"`
	} `json:"party"`
	YeaTotal int `json:"yeaTotal"`
	NayTotal int `json:"nayTotal"`
}

type rollCallVote struct {
	VotePartyTotal []rollCallParty `json:"votePartyTotal"`
}

type voteResponse struct {
	HouseRollCallVote  *rollCallVote `json:"houseRollCallVote"`
	SenateRollCallVote *rollCallVote `json:"senateRollCallVote"`
}
