package telegram

import (
	"fmt"
	"net/http"
	"net/url"
)

// Bot отправляет уведомления персонала в служебный чат отеля.
type Bot struct {
	token   string
	chatID  string
	baseURL string
}

func NewBot(token, chatID string) *Bot {
	return &Bot{
		token:   token,
		chatID:  chatID,
		baseURL: "https://api.telegram.org/bot" + token,
	}
}

func (b *Bot) SendMessage(chatID, text string) error {
	endpoint := b.baseURL + "/sendMessage"

	params := url.Values{}
	params.Add("chat_id", chatID)
	params.Add("text", text)

	resp, err := http.PostForm(endpoint, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error: %s", resp.Status)
	}

	return nil
}

// Notify отправляет текст в настроенный чат персонала.
func (b *Bot) Notify(text string) error {
	return b.SendMessage(b.chatID, text)
}
