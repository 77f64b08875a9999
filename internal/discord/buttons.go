package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	createReportButtonID = "btn_create_report"
	searchNameButtonID   = "btn_search_name"
	searchStaticButtonID = "btn_search_static"
	searchIDButtonID     = "btn_search_id"
	showRecentButtonID   = "btn_show_recent"
)

const panelColor = 0x300f54

// buttonPanel is the persistent control message posted by setup_buttons.
// The cleanup sweep recognizes it by its components and leaves it alone.
func buttonPanel() *discordgo.InteractionResponseData {
	embed := &discordgo.MessageEmbed{
		Title: "📋 Система управління звітами та дипломами",
		Description: "**🎓 ДИПЛОМИ:**\n" +
			"• Терапевт - створити диплом терапевта\n" +
			"• Хірург - створити диплом хірурга\n" +
			"• Спеціаліст - створити диплом спеціаліста\n\n" +
			"**📝 ЗВІТИ:**\n" +
			"• Створити звіт - створити новий звіт про оперативне втручання\n" +
			"• Пошук по імені - знайти звіти за ПІБ пацієнта\n" +
			"• Пошук по Static - знайти звіти за Static ID\n" +
			"• Пошук по ID - знайти звіт за номером\n" +
			"• Останні звіти - показати останні 5 звітів",
		Color:     panelColor,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	diplomaButtonIDs := []struct {
		id    string
		label string
	}{
		{"btn_diploma_therapist", "Терапевт"},
		{"btn_diploma_surgeon", "Хірург"},
		{"btn_diploma_specialist", "Спеціаліст"},
	}

	diplomaRow := discordgo.ActionsRow{}
	for _, btn := range diplomaButtonIDs {
		diplomaRow.Components = append(diplomaRow.Components, discordgo.Button{
			CustomID: btn.id,
			Label:    btn.label,
			Style:    discordgo.PrimaryButton,
			Emoji:    &discordgo.ComponentEmoji{Name: "🎓"},
		})
	}

	reportRow := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				CustomID: createReportButtonID,
				Label:    "Створити звіт",
				Style:    discordgo.SuccessButton,
				Emoji:    &discordgo.ComponentEmoji{Name: "📝"},
			},
			discordgo.Button{
				CustomID: showRecentButtonID,
				Label:    "Останні звіти",
				Style:    discordgo.SuccessButton,
				Emoji:    &discordgo.ComponentEmoji{Name: "📜"},
			},
		},
	}

	searchRow := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				CustomID: searchNameButtonID,
				Label:    "Пошук по імені",
				Style:    discordgo.SecondaryButton,
				Emoji:    &discordgo.ComponentEmoji{Name: "🔍"},
			},
			discordgo.Button{
				CustomID: searchStaticButtonID,
				Label:    "Пошук по Static",
				Style:    discordgo.SecondaryButton,
				Emoji:    &discordgo.ComponentEmoji{Name: "🔍"},
			},
			discordgo.Button{
				CustomID: searchIDButtonID,
				Label:    "Пошук по ID",
				Style:    discordgo.SecondaryButton,
				Emoji:    &discordgo.ComponentEmoji{Name: "🔍"},
			},
		},
	}

	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{diplomaRow, reportRow, searchRow},
	}
}
