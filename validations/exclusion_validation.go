package validations

import (
	"context"
	"regexp"

	domainExclusion "github.com/AzielCF/tg-relay/domains/exclusion"
	pkgError "github.com/AzielCF/tg-relay/pkg/error"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// Chat and sender identifiers are signed decimal integers.
	chatIDRegex = regexp.MustCompile(`^-?\d{1,20}$`)
	// Telegram usernames: word characters, at most 32.
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{1,32}$`)
)

func ValidateAddExcludedChat(ctx context.Context, request domainExclusion.AddChatRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.ChatID,
			validation.Required,
			validation.Match(chatIDRegex).Error("must be a number (optionally negative)"),
		),
		validation.Field(&request.Name, validation.Length(0, 255)),
		validation.Field(&request.Type, validation.In(
			domainExclusion.ChatTypeChannel,
			domainExclusion.ChatTypeGroup,
			domainExclusion.ChatTypeIndividual,
			domainExclusion.ChatTypeUnknown,
			"",
		)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateChatID(ctx context.Context, chatID string) error {
	err := validation.Validate(chatID,
		validation.Required,
		validation.Match(chatIDRegex).Error("must be a number (optionally negative)"),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateAddExcludedUsername(ctx context.Context, request domainExclusion.AddUsernameRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Username,
			validation.Required,
			validation.Match(usernameRegex).Error("must match [A-Za-z0-9_]{1,32}"),
		),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateUsername(ctx context.Context, username string) error {
	err := validation.Validate(username,
		validation.Required,
		validation.Match(usernameRegex).Error("must match [A-Za-z0-9_]{1,32}"),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
