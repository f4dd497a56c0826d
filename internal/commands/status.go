package commands

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// handleStatus shows bot health and host statistics.
func (h *Handler) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := deferEphemeral(s, i); err != nil {
		return err
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Uptime",
			Value:  time.Since(h.started).Round(time.Second).String(),
			Inline: true,
		},
		{
			Name:   "Goroutines",
			Value:  fmt.Sprintf("%d", runtime.NumGoroutine()),
			Inline: true,
		},
		{
			Name:   "Heap",
			Value:  fmt.Sprintf("%.1f MiB", float64(m.HeapAlloc)/1024/1024),
			Inline: true,
		},
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "System Memory",
			Value:  fmt.Sprintf("%.1f%% of %.1f GiB", vm.UsedPercent, float64(vm.Total)/1024/1024/1024),
			Inline: true,
		})
	}

	if info, err := host.Info(); err == nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Host",
			Value:  fmt.Sprintf("%s %s, up %s", info.Platform, info.PlatformVersion, (time.Duration(info.Uptime) * time.Second).String()),
			Inline: true,
		})
	}

	if h.wd != nil {
		for name, healthy := range h.wd.Status() {
			value := "✅ healthy"
			if !healthy {
				value = "❌ stalled"
			}
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:   name,
				Value:  value,
				Inline: true,
			})
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:     "Bot Status",
		Fields:    fields,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	embeds := []*discordgo.MessageEmbed{embed}
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Embeds: &embeds})
	return err
}
