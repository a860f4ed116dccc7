package metadomain

import (
	"strconv"

	"github.com/sirupsen/logrus"
)

type Campaign struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Status          string `json:"status"`
	EffectiveStatus string `json:"effective_status,omitempty"`
	Objective       string `json:"objective,omitempty"`
	DailyBudget     string `json:"daily_budget,omitempty"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

type CampaignInsight struct {
	AccountID    string   `json:"account_id"`
	Actions      []Action `json:"actions"`
	CampaignID   string   `json:"campaign_id"`
	CampaignName string   `json:"campaign_name"`
	Clicks       string   `json:"clicks"`
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`
	Impressions  string   `json:"impressions"`
	Objective    string   `json:"objective"`
	Spend        string   `json:"spend"`
}

type CampaignInsightsResponse struct {
	Data   []CampaignInsight `json:"data"`
	Paging Paging            `json:"paging"`
}

// GetResult retorna a quantidade da ação que representa o resultado do objetivo da campanha
func (c *CampaignInsight) GetResult() int {
	actionType, ok := MetaObjectiveToActionType[c.Objective]
	if !ok {
		logrus.WithField("objective", c.Objective).Debug("insights: objective not mapped")
		return 0
	}

	for i := range len(c.Actions) {
		action := c.Actions[i]

		if action.ActionType == actionType {
			actionValue, err := strconv.ParseFloat(action.Value, 64)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"action_type":  action.ActionType,
					"action_value": action.Value,
				}).WithError(err).Warn("insights: error converting action value")
				return 0
			}

			return int(actionValue)
		}
	}

	return 0
}
