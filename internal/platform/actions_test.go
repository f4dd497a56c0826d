package platform

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestMapUnknownBan(t *testing.T) {
	unknownBan := &discordgo.RESTError{
		Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownBan},
	}
	assert.ErrorIs(t, mapUnknownBan(unknownBan), ErrNotBanned)
}

func TestMapUnknownBanPassesOtherErrorsThrough(t *testing.T) {
	denied := &discordgo.RESTError{
		Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingPermissions},
	}
	assert.NotErrorIs(t, mapUnknownBan(denied), ErrNotBanned)
	assert.Same(t, denied, mapUnknownBan(denied).(*discordgo.RESTError))

	plain := errors.New("connection reset")
	assert.ErrorIs(t, mapUnknownBan(plain), plain)

	assert.NoError(t, mapUnknownBan(nil))
}
