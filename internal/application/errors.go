package application

import (
	"errors"

	"github.com/oksasatya/movierama/internal/domain/apperror"
)

var (
	ErrInvalidCredentials = apperror.Authentication("invalid credentials")
	ErrBlankCredentials   = apperror.Validation("name and password must not be blank")
	ErrNameTaken          = apperror.Validation("name already exists")
	ErrInvalidUserID      = apperror.Validation("user id must be positive")

	ErrBlankTitle       = apperror.Validation("title must not be blank")
	ErrTitleTaken       = apperror.Validation("title already exists")
	ErrPosterMismatch   = apperror.Validation("user_id must match the authenticated user")
	ErrMovieNotFound    = apperror.Validation("movie does not exist")
	ErrNotMovieOwner    = apperror.Validation("only the user who posted the movie can change it")
	ErrUnsupportedImage = apperror.Validation("poster must be an image")

	ErrInvalidOpinion    = apperror.Validation("opinion must be LIKE or HATE")
	ErrOwnMovie          = apperror.Validation("cannot opinion own movie")
	ErrAlreadyVoted      = apperror.Validation("already voted with this opinion; swap or retract instead")
	ErrNothingToRetract  = apperror.Validation("nothing to retract")
	ErrOpinionMismatch   = apperror.Validation("stored opinion differs from the one to retract")
	ErrInconsistentState = errors.New("inconsistent opinion state")

	ErrPostersDisabled = errors.New("poster storage not configured")
)
