package usecases

// User-facing texts
const (
	msgWelcome         = "👋 Hello %s! Welcome to %s support service."
	msgUnderReview     = "⏳ Your KYC documents are under review. We will notify you once the support team has decided."
	msgAskEmail        = "Please send your *email address*."
	msgInvalidEmail    = "⚠️ Please send a *valid* email address."
	msgEmailTaken      = "🚫 Email already used. Use a *different* one."
	msgEmailSaved      = "✅ Email saved. Please upload *front side* of your ID."
	msgFrontReceived   = "Front side received ✅\nNow upload *back side* of your ID."
	msgSubmitted       = "✅ Your KYC documents have been submitted successfully.\nPlease wait for approval from our support team."
	msgPhotoReminder   = "Please continue your KYC by uploading the required ID photo."
	msgSessionComplete = "Session complete. Use /start to begin again."
	msgStatusCommand   = "📋 Your current KYC status is: *%s*"
	msgStatusButton    = "Your KYC status is: *%s*"
	msgApproved        = "🎉 Your KYC has been *APPROVED*!"
	msgRejected        = "❌ Your KYC was *REJECTED*. Please start again with a different email."
	msgHelp            = "▫️ *Contact Support* – start KYC\n▫️ *Check KYC Status* – see current status\n\n_Admin commands_: /supportlist, /msg <userId> <text>"
	defaultDisplayName = "Trader"
)

// Reviewer-facing texts
const (
	msgReviewerStarted     = "👤 User %d (%s) started the bot."
	msgReviewerFront       = "📥 FRONT ID from user %d\nEmail: %s"
	msgReviewerBack        = "📥 BACK ID from user %d\nEmail: %s"
	captionFront           = "Front side of ID"
	captionBack            = "Back side of ID – Choose action:"
	msgReviewerWaitingHead = "Waiting for review:\n"
	msgReviewerNoneWaiting = "No users waiting for review."
	msgReviewerUserMissing = "User not found."
	msgReviewerSent        = "Message sent."
	msgReviewerFailed      = "❌ Failed: %s"
	msgSupportPrefix       = "💬 *Support*: "
	unknownDisplayName     = "Unknown"
	answerUserNotFound     = "User not found"
	answerAlreadyReviewed  = "Already reviewed"
	answerApproved         = "Approved"
	answerRejected         = "Rejected"
)

// Button labels
const (
	buttonContactSupport = "Contact Support 📞"
	buttonCheckStatus    = "Check KYC Status 📋"
	buttonHelp           = "Help ❓"
	buttonApprove        = "Approve ✅"
	buttonReject         = "Reject ❌"
)
