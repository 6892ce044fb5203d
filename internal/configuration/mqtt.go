package configuration

type TopicsConfig struct {
	LiveDuty      string `json:"liveDuty"`
	TargetDuty    string `json:"targetDuty"`
	MinDuty       string `json:"minDuty"`
	MaxDuty       string `json:"maxDuty"`
	MaxTemp       string `json:"maxTemp"`
	// TempSource carries the arbitration tag (live-probe / cached-snapshot),
	// TempDevice the device the winning temperature came from.
	TempSource    string `json:"tempSource"`
	TempDevice    string `json:"tempDevice"`
	SpinningDisks string `json:"spinningDisks"`
	// StandbyPrefix is the parent topic for per-device standby flags,
	// published as "<StandbyPrefix>/<device>".
	StandbyPrefix string `json:"standbyPrefix"`
	UpdatedAt     string `json:"updatedAt"`
	BiasLimit     string `json:"biasLimit"`
	Bias          string `json:"bias"`
	Status        string `json:"status"`
	BiasSet       string `json:"biasSet"`
	BiasReset     string `json:"biasReset"`
}

type MqttConfig struct {
	Broker   string       `json:"broker"`
	ClientId string       `json:"clientId"`
	Username string       `json:"username"`
	Password string       `json:"password"`
	Topics   TopicsConfig `json:"topics"`
}
