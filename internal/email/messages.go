package email

import "fmt"

// CredentialsMessage carries a newly created user's temporary password.
func CredentialsMessage(from, to, userName, tempPassword, creatorName, appURL string) *Message {
	return &Message{
		From:    from,
		To:      []string{to},
		Subject: "Tu cuenta de CenterThink",
		Text: fmt.Sprintf(
			"Hola %v,\n\n%v te ha creado una cuenta en CenterThink.\n\n"+
				"Contraseña temporal: %v\n\nEntra en %v y cámbiala en tu primer acceso.\n",
			userName, creatorName, tempPassword, appURL),
	}
}

// VerificationMessage asks a self-registered user to confirm their email.
func VerificationMessage(from, to, userName, verifyURL string) *Message {
	return &Message{
		From:    from,
		To:      []string{to},
		Subject: "Confirma tu cuenta de CenterThink",
		Text: fmt.Sprintf(
			"Hola %v,\n\nConfirma tu cuenta abriendo este enlace:\n\n%v\n",
			userName, verifyURL),
	}
}

// RecoveryMessage delivers a password-recovery link.
func RecoveryMessage(from, to, userName, resetURL string) *Message {
	return &Message{
		From:    from,
		To:      []string{to},
		Subject: "Restablece tu contraseña de CenterThink",
		Text: fmt.Sprintf(
			"Hola %v,\n\nPuedes restablecer tu contraseña aquí:\n\n%v\n",
			userName, resetURL),
	}
}
