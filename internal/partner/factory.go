package partner

import (
	"fmt"

	"github.com/merute/welcome/internal/config"
	"github.com/merute/welcome/internal/logging"
)

// NewSubmitterFromConfig picks the submission collaborator named by
// PARTNER_SUBMITTER.
func NewSubmitterFromConfig() (Submitter, error) {
	switch kind := config.PartnerSubmitter(); kind {
	case "simulated":
		delay := config.SubmitDelay()
		logging.InfoLog("Partner submitter: simulated (delay %v)", delay)
		return SimulatedSubmitter{Delay: delay}, nil

	case "http":
		url := config.PartnerAPIURL()
		logging.InfoLog("Partner submitter: http")
		return NewHTTPSubmitter(url, config.SubmitTimeout()), nil

	case "smtp":
		cfg := MailConfig{
			Addr:         config.SMTPAddr(),
			Username:     config.SMTPUsername(),
			Password:     config.SMTPPassword(),
			From:         config.SMTPFrom(),
			To:           config.PartnerInbox(),
			DKIMDomain:   config.DKIMDomain(),
			DKIMSelector: config.DKIMSelector(),
		}
		if path := config.DKIMKeyPath(); path != "" {
			signer, err := LoadSigner(path)
			if err != nil {
				return nil, fmt.Errorf("load DKIM key: %w", err)
			}
			cfg.Signer = signer
		}
		logging.InfoLog("Partner submitter: smtp via %s (dkim=%t)", cfg.Addr, cfg.Signer != nil)
		return NewMailSubmitter(cfg), nil

	default:
		return nil, fmt.Errorf("unknown PARTNER_SUBMITTER %q", kind)
	}
}
