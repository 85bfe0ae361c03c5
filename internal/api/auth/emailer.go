package auth

import (
	"fmt"
	"net/smtp"
	"os"

	"historinhas-api/config"
)

func SendVerificationEmail(to string, token string) error {
	link := fmt.Sprintf("%s/auth/verify?token=%s", config.APP_URL, token)
	subject := "Historinhas - Confirme sua conta"
	body := fmt.Sprintf("Clique no link abaixo para confirmar sua conta:\n\n%s", link)
	return sendMail(to, subject, body)
}

// SendWelcomeEmail greets an account provisioned from a paid checkout and
// hands over a set-password link, since the buyer never chose credentials.
func SendWelcomeEmail(to string, token string) error {
	link := fmt.Sprintf("%s/auth/reset?token=%s", config.APP_URL, token)
	subject := "Historinhas - Bem-vindo!"
	body := fmt.Sprintf("Sua conta foi criada junto com a sua assinatura.\n\nDefina sua senha pelo link abaixo para começar a criar histórias:\n\n%s", link)
	return sendMail(to, subject, body)
}

func SendPasswordResetEmail(to string, token string) error {
	link := fmt.Sprintf("%s/auth/reset?token=%s", config.APP_URL, token)
	subject := "Historinhas - Redefinição de senha"
	body := fmt.Sprintf("Clique no link abaixo para redefinir sua senha:\n\n%s", link)
	return sendMail(to, subject, body)
}

func sendMail(to, subject, body string) error {
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")

	auth := smtp.PlainAuth("", from, password, host)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	err := smtp.SendMail(host+":"+port, auth, from, []string{to}, message)
	if err != nil {
		fmt.Println("❌ SMTP error:", err)
	}
	return err
}
