package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	adssvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/ads"
	analyticssvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/analytics"
	assetssvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/assets"
	authsvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/auth"
	buildssvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/builds"
	deploysvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/deployments"
	gamessvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/games"
	guildssvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/guilds"
	identsvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/identities"
)

// Output renders API records in the configured format.
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a formatter writing to w.
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

func newOutput(cmd interface{ OutOrStdout() io.Writer }) *Output {
	return NewOutput(settings.Output, cmd.OutOrStdout())
}

// Print outputs data in the configured format.
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
		return
	}
	o.printText(data)
}

// PrintMessage outputs a simple message.
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
		return
	}
	fmt.Fprintln(o.w, msg)
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *authsvc.Session:
		o.printSession(v)
	case *authsvc.User:
		o.printUser(v)
	case *gamessvc.Game:
		o.printGame(v)
	case []gamessvc.Game:
		o.printGames(v)
	case *buildssvc.Build:
		o.printBuild(v)
	case []buildssvc.Build:
		o.printBuilds(v)
	case *deploysvc.Deployment:
		o.printDeployment(v)
	case []deploysvc.Deployment:
		o.printDeployments(v)
	case *assetssvc.Asset:
		o.printAsset(v)
	case []assetssvc.Asset:
		for i := range v {
			if i > 0 {
				fmt.Fprintln(o.w)
			}
			o.printAsset(&v[i])
		}
	case *identsvc.Identity:
		o.printIdentity(v)
	case []identsvc.Identity:
		for i := range v {
			o.printIdentity(&v[i])
		}
	case *guildssvc.Guild:
		o.printGuild(v)
	case []guildssvc.Guild:
		for i := range v {
			o.printGuild(&v[i])
		}
	case []guildssvc.Member:
		o.printMembers(v)
	case *guildssvc.Invite:
		fmt.Fprintf(o.w, "Invite %s: %s -> guild %s (%s)\n", v.ID, v.IdentityID, v.GuildID, v.Status)
	case *adssvc.Campaign:
		o.printCampaign(v)
	case []adssvc.Campaign:
		for i := range v {
			o.printCampaign(&v[i])
		}
	case *adssvc.Stats:
		o.printCampaignStats(v)
	case *analyticssvc.Overview:
		o.printOverview(v)
	case []analyticssvc.EventSummary:
		o.printEventSummaries(v)
	case *analyticssvc.Realtime:
		o.printRealtime(v)
	default:
		// Unknown records pass through as JSON.
		o.printJSON(data)
	}
}

func (o *Output) printSession(s *authsvc.Session) {
	o.printUser(&s.User)
	fmt.Fprintf(o.w, "Token: %s\n", s.Token)
}

func (o *Output) printUser(u *authsvc.User) {
	fmt.Fprintf(o.w, "User: %s (%s)\n", u.Email, u.ID)
	if u.Studio != "" {
		fmt.Fprintf(o.w, "Studio: %s\n", u.Studio)
	}
}

func (o *Output) printGame(g *gamessvc.Game) {
	fmt.Fprintf(o.w, "%s %s (%s)\n", color.CyanString("Game:"), g.Name, g.ID)
	fmt.Fprintf(o.w, "Platform: %s\n", g.Platform)
	if g.Status != "" {
		fmt.Fprintf(o.w, "Status: %s\n", statusColor(g.Status))
	}
	if g.Description != "" {
		fmt.Fprintf(o.w, "Description: %s\n", g.Description)
	}
}

func (o *Output) printGames(games []gamessvc.Game) {
	if len(games) == 0 {
		fmt.Fprintln(o.w, "No games")
		return
	}
	for _, g := range games {
		fmt.Fprintf(o.w, "%-12s %-24s %-10s %s\n", g.ID, g.Name, g.Platform, statusColor(g.Status))
	}
}

func (o *Output) printBuild(b *buildssvc.Build) {
	fmt.Fprintf(o.w, "%s %s\n", color.CyanString("Build:"), b.ID)
	fmt.Fprintf(o.w, "Game: %s\n", b.GameID)
	fmt.Fprintf(o.w, "Version: %s\n", b.Version)
	fmt.Fprintf(o.w, "Status: %s\n", statusColor(b.Status))
	if b.Notes != "" {
		fmt.Fprintf(o.w, "Notes: %s\n", b.Notes)
	}
}

func (o *Output) printBuilds(list []buildssvc.Build) {
	if len(list) == 0 {
		fmt.Fprintln(o.w, "No builds")
		return
	}
	for _, b := range list {
		fmt.Fprintf(o.w, "%-12s %-12s %s\n", b.ID, b.Version, statusColor(b.Status))
	}
}

func (o *Output) printDeployment(d *deploysvc.Deployment) {
	fmt.Fprintf(o.w, "%s %s\n", color.CyanString("Deployment:"), d.ID)
	fmt.Fprintf(o.w, "Build: %s\n", d.BuildID)
	fmt.Fprintf(o.w, "Environment: %s\n", d.Environment)
	fmt.Fprintf(o.w, "Status: %s\n", statusColor(d.Status))
	if d.URL != "" {
		fmt.Fprintf(o.w, "URL: %s\n", d.URL)
	}
}

func (o *Output) printDeployments(list []deploysvc.Deployment) {
	if len(list) == 0 {
		fmt.Fprintln(o.w, "No deployments")
		return
	}
	for _, d := range list {
		fmt.Fprintf(o.w, "%-12s %-12s %-12s %s\n", d.ID, d.BuildID, d.Environment, statusColor(d.Status))
	}
}

func (o *Output) printAsset(a *assetssvc.Asset) {
	fmt.Fprintf(o.w, "%s %s (%s)\n", color.CyanString("Asset:"), a.Name, a.ID)
	fmt.Fprintf(o.w, "Owner: %s\n", a.Owner)
	fmt.Fprintf(o.w, "Status: %s\n", statusColor(a.Status))
	if a.TxHash != "" {
		fmt.Fprintf(o.w, "Tx: %s\n", a.TxHash)
	}
}

func (o *Output) printIdentity(id *identsvc.Identity) {
	fmt.Fprintf(o.w, "%s %s (%s)\n", color.CyanString("Identity:"), id.DisplayName, id.ID)
	for _, w := range id.Wallets {
		fmt.Fprintf(o.w, "  wallet %s on %s\n", w.Address, w.Chain)
	}
}

func (o *Output) printGuild(g *guildssvc.Guild) {
	tag := ""
	if g.Tag != "" {
		tag = " [" + g.Tag + "]"
	}
	fmt.Fprintf(o.w, "%s %s%s (%s)\n", color.CyanString("Guild:"), g.Name, tag, g.ID)
	fmt.Fprintf(o.w, "Owner: %s\n", g.OwnerID)
	fmt.Fprintf(o.w, "Members: %d\n", g.MemberCount)
}

func (o *Output) printMembers(members []guildssvc.Member) {
	if len(members) == 0 {
		fmt.Fprintln(o.w, "No members")
		return
	}
	for _, m := range members {
		fmt.Fprintf(o.w, "%-12s %-20s %s\n", m.IdentityID, m.DisplayName, m.Role)
	}
}

func (o *Output) printCampaign(c *adssvc.Campaign) {
	fmt.Fprintf(o.w, "%s %s (%s)\n", color.CyanString("Campaign:"), c.Name, c.ID)
	fmt.Fprintf(o.w, "Game: %s\n", c.GameID)
	fmt.Fprintf(o.w, "Status: %s\n", statusColor(c.Status))
	if c.Budget > 0 {
		fmt.Fprintf(o.w, "Budget: %.2f\n", c.Budget)
	}
}

func (o *Output) printCampaignStats(s *adssvc.Stats) {
	fmt.Fprintf(o.w, "Campaign %s\n", s.CampaignID)
	fmt.Fprintf(o.w, "Impressions: %d\n", s.Impressions)
	fmt.Fprintf(o.w, "Clicks: %d (CTR %.2f%%)\n", s.Clicks, s.CTR*100)
	fmt.Fprintf(o.w, "Spend: %.2f\n", s.Spend)
}

func (o *Output) printOverview(ov *analyticssvc.Overview) {
	fmt.Fprintf(o.w, "%s %s (%s)\n", color.CyanString("Analytics:"), ov.GameID, ov.Period)
	fmt.Fprintf(o.w, "DAU: %d  MAU: %d\n", ov.DAU, ov.MAU)
	fmt.Fprintf(o.w, "New users: %d\n", ov.NewUsers)
	fmt.Fprintf(o.w, "Sessions: %d\n", ov.Sessions)
	fmt.Fprintf(o.w, "Revenue: %.2f\n", ov.Revenue)
}

func (o *Output) printEventSummaries(events []analyticssvc.EventSummary) {
	if len(events) == 0 {
		fmt.Fprintln(o.w, "No events")
		return
	}
	for _, e := range events {
		fmt.Fprintf(o.w, "%-24s %8d events %8d uniques\n", e.Name, e.Count, e.Uniques)
	}
}

func (o *Output) printRealtime(rt *analyticssvc.Realtime) {
	fmt.Fprintf(o.w, "Active users: %d  Sessions/min: %.1f\n", rt.ActiveUsers, rt.SessionsPerMinute)
}

func statusColor(status string) string {
	switch strings.ToLower(status) {
	case "active", "live", "succeeded", "minted", "ok":
		return color.GreenString(status)
	case "failed", "cancelled", "stopped", "burned":
		return color.RedString(status)
	case "queued", "pending", "running", "rolling_out", "paused":
		return color.YellowString(status)
	default:
		return status
	}
}
