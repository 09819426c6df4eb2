package configs

import "log"

const bkashSandboxBaseURL = "https://tokenized.sandbox.bka.sh/v1.2.0-beta/tokenized/checkout"

// BkashConfig holds the credential block for the bKash tokenized checkout API.
type BkashConfig struct {
	BaseURL   string
	Username  string
	Password  string
	AppKey    string
	AppSecret string
}

func LoadBkashConfig() BkashConfig {
	baseURL := LoadENV.BkashBaseURL
	if baseURL == "" {
		baseURL = bkashSandboxBaseURL
	}

	cfg := BkashConfig{
		BaseURL:   baseURL,
		Username:  LoadENV.BkashUsername,
		Password:  LoadENV.BkashPassword,
		AppKey:    LoadENV.BkashAppKey,
		AppSecret: LoadENV.BkashAppSecret,
	}

	if cfg.AppKey == "" || cfg.AppSecret == "" {
		log.Println("Warning: bKash app key/secret not set, online payment will fail")
	}

	return cfg
}
