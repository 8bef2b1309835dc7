package model

import "fmt"

// AppConfig is the singleton row describing the running node and processing versions.
type AppConfig struct {
	TondidVersion     string
	ProcessingVersion string
	Network           string
}

// NetworkName builds the network identifier stored in AppConfig.
func NetworkName(testnet bool, suffix uint32) string {
	if !testnet {
		return "tondi-mainnet"
	}
	if suffix == 0 {
		return "tondi-testnet"
	}
	return fmt.Sprintf("tondi-testnet%d", suffix)
}
