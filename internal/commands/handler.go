package commands

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/unreal-slackers/quinn/internal/config"
	"github.com/unreal-slackers/quinn/internal/logging"
	"github.com/unreal-slackers/quinn/internal/massban"
	"github.com/unreal-slackers/quinn/internal/moderation"
	"github.com/unreal-slackers/quinn/internal/platform"
	"github.com/unreal-slackers/quinn/internal/store"
	"github.com/unreal-slackers/quinn/internal/watchdog"
)

// Handler routes all interactions to their command handlers. Every
// collaborator arrives through the constructor.
type Handler struct {
	session *platform.Session
	mod     *moderation.Service
	store   *store.Store
	wd      *watchdog.Watchdog
	cfg     *config.Config
	started time.Time

	mu    sync.Mutex
	gates map[string]*massban.Gate
}

func NewHandler(session *platform.Session, mod *moderation.Service, st *store.Store, wd *watchdog.Watchdog, cfg *config.Config) *Handler {
	return &Handler{
		session: session,
		mod:     mod,
		store:   st,
		wd:      wd,
		cfg:     cfg,
		started: time.Now(),
		gates:   make(map[string]*massban.Gate),
	}
}

// Register hooks the interaction handler into the session and registers
// the application commands.
func (h *Handler) Register() error {
	h.session.AddHandler(h.handleInteraction)

	commands := GetAllCommands()
	if err := h.session.RegisterCommands(commands); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	logging.Info("Command handler initialized with %d commands", len(commands))
	return nil
}

// handleInteraction routes all interactions (commands, buttons, modals)
func (h *Handler) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.handleCommand(s, i)
	case discordgo.InteractionMessageComponent:
		h.handleComponent(s, i)
	case discordgo.InteractionModalSubmit:
		h.handleModal(s, i)
	}
}

func (h *Handler) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	logging.Info("Command used: %s by %s", data.Name, actorFrom(i).ID)

	var err error
	switch data.Name {
	case "ban":
		err = h.handleBan(s, i)
	case "kick":
		err = h.handleKick(s, i)
	case "strike":
		err = h.handleStrike(s, i)
	case "unban":
		err = h.handleUnban(s, i)
	case "megaban":
		err = h.handleMegaBan(s, i)
	case "version":
		err = h.handleVersion(s, i)
	case "status":
		err = h.handleStatus(s, i)
	case "Report Message":
		err = h.handleReportMessage(s, i)
	default:
		err = fmt.Errorf("unknown command: %s", data.Name)
	}

	if err != nil {
		logging.Error("Command error [%s]: %v", data.Name, err)
		respondGenericError(s, i)
	}
}

// handleComponent routes button presses. The only buttons this bot has
// are the mass-ban confirmation controls; a press on a gate that already
// resolved is acknowledged and otherwise ignored.
func (h *Handler) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()

	switch {
	case strings.HasPrefix(data.CustomID, megabanConfirmPrefix):
		h.resolveGate(s, i, strings.TrimPrefix(data.CustomID, megabanConfirmPrefix), true)
	case strings.HasPrefix(data.CustomID, megabanCancelPrefix):
		h.resolveGate(s, i, strings.TrimPrefix(data.CustomID, megabanCancelPrefix), false)
	default:
		logging.Warn("Unknown component: %s", data.CustomID)
	}
}

func (h *Handler) handleModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()

	if strings.HasPrefix(data.CustomID, reportModalPrefix) {
		if err := h.handleReportSubmit(s, i); err != nil {
			logging.Error("Report submit error: %v", err)
			respondGenericError(s, i)
		}
		return
	}

	logging.Warn("Unknown modal: %s", data.CustomID)
}

func (h *Handler) addGate(id string, gate *massban.Gate) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.gates[id] = gate
}

func (h *Handler) removeGate(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.gates, id)
}

func (h *Handler) gate(id string) *massban.Gate {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.gates[id]
}

// actorFrom extracts the invoking moderator's identity.
func actorFrom(i *discordgo.InteractionCreate) moderation.Actor {
	if i.Member != nil && i.Member.User != nil {
		name := i.Member.Nick
		if name == "" {
			name = i.Member.User.Username
		}
		return moderation.Actor{ID: i.Member.User.ID, Name: name}
	}
	return moderation.Actor{}
}
