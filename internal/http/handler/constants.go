package handler

const (
	paramUserID = "userId"

	msgInvalidRequestBody = "invalid request body"
	msgInvalidUserID      = "invalid user id"
	msgInvalidRole        = "invalid role"
	msgPasswordProcess    = "failed to process password"
	msgGenerateTokenFail  = "failed to generate token"
)
