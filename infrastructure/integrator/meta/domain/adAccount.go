package metadomain

// AccountStatusActive é o único status em que a conta pode veicular anúncios
const AccountStatusActive = 1

var accountStatusNames = map[int]string{
	1:   "ACTIVE",
	2:   "DISABLED",
	3:   "UNSETTLED",
	7:   "PENDING_RISK_REVIEW",
	8:   "PENDING_SETTLEMENT",
	9:   "IN_GRACE_PERIOD",
	100: "PENDING_CLOSURE",
	101: "CLOSED",
	201: "ANY_ACTIVE",
	202: "ANY_CLOSED",
}

type AdAccount struct {
	ID            string `json:"id"`
	AccountID     string `json:"account_id"`
	Name          string `json:"name"`
	AccountStatus int    `json:"account_status"`
	DisableReason int    `json:"disable_reason"`
	Currency      string `json:"currency"`
}

func (a *AdAccount) IsActive() bool {
	return a.AccountStatus == AccountStatusActive
}

func (a *AdAccount) StatusName() string {
	if name, ok := accountStatusNames[a.AccountStatus]; ok {
		return name
	}
	return "UNKNOWN"
}
