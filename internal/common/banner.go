package common

import (
	"fmt"

	"github.com/ternarybob/banner"
)

// PrintBanner prints the build and the listen address the API is about to serve on
func PrintBanner(info BuildInfo, config *Config) {
	b := banner.New().
		SetBorderColor(banner.ColorCyan).
		SetTextColor(banner.ColorWhite).
		SetBold(true)

	b.PrintTopLine()
	b.PrintCenteredText("SFB Self-Assessment API")
	b.PrintSeparatorLine()
	b.PrintKeyValue("Version", info.Version, 12)
	b.PrintKeyValue("Commit", info.GitCommit, 12)
	b.PrintKeyValue("Listen", fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port), 12)
	b.PrintKeyValue("Cache", config.Cache.Backend, 12)
	b.PrintKeyValue("Environment", config.Environment, 12)
	b.PrintBottomLine()
}
