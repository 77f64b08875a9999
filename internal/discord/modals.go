package discord

import (
	"github.com/bwmarrin/discordgo"

	"zvitbot/internal/domain/diploma"
)

const (
	reportModalID       = "op_report_modal"
	searchNameModalID   = "search_name_modal"
	searchStaticModalID = "search_static_modal"
	searchIDModalID     = "search_id_modal"
)

func textInputRow(customID, label string, style discordgo.TextInputStyle, required bool, placeholder string) discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    customID,
				Label:       label,
				Style:       style,
				Required:    required,
				Placeholder: placeholder,
			},
		},
	}
}

func reportModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: reportModalID,
		Title:    "Створити звіт про оперативне втручання",
		Components: []discordgo.MessageComponent{
			textInputRow("full_name", "ПІБ (Прізвище Ім'я)", discordgo.TextInputShort, true, ""),
			textInputRow("static", "Static (унікальний ID)", discordgo.TextInputShort, true, ""),
			textInputRow("operation", "Вид оперативного втручання", discordgo.TextInputShort, true, ""),
			textInputRow("description", "Короткий опис", discordgo.TextInputParagraph, true, ""),
			textInputRow("issued_by", "Видано (ПІБ того, хто видає)", discordgo.TextInputShort, true, ""),
		},
	}
}

func diplomaModal(kind diploma.Kind) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: diploma.ModalID(kind),
		Title:    kind.ModalTitle(),
		Components: []discordgo.MessageComponent{
			textInputRow("surname", "Прізвище", discordgo.TextInputShort, true, "Наприклад: Петренко"),
			textInputRow("name", "Імʼя", discordgo.TextInputShort, true, "Наприклад: Іван"),
			textInputRow("gender", "Статік (необовʼязково)", discordgo.TextInputShort, false, "Наприклад: 1111"),
			textInputRow("issued_by", "Видано (ПІБ того, хто видає)", discordgo.TextInputShort, true, ""),
		},
	}
}

func searchNameModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: searchNameModalID,
		Title:    "Пошук звітів по імені",
		Components: []discordgo.MessageComponent{
			textInputRow("query", "Введіть ПІБ (Прізвище або Ім'я)", discordgo.TextInputShort, true, "Наприклад: Петренко або Іван"),
		},
	}
}

func searchStaticModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: searchStaticModalID,
		Title:    "Пошук звітів по Static ID",
		Components: []discordgo.MessageComponent{
			textInputRow("query", "Введіть Static ID", discordgo.TextInputShort, true, "Наприклад: 83031"),
		},
	}
}

func searchIDModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: searchIDModalID,
		Title:    "Пошук звіту по номеру",
		Components: []discordgo.MessageComponent{
			textInputRow("query", "Введіть номер звіту", discordgo.TextInputShort, true, "Наприклад: 12"),
		},
	}
}
