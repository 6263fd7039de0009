package v1

import "github.com/postiq-ai/postiq-bot/app/dialog"

// Dialog ids. Window ids follow as "Dialog.window" states; every
// transition in the logic layer goes through these constants.
const (
	DialogIntro                 = "Intro"
	DialogMainMenu              = "MainMenu"
	DialogContentMenu           = "ContentMenu"
	DialogGeneratePublication   = "GeneratePublication"
	DialogModerationPublication = "ModerationPublication"
	DialogModerationVideoCut    = "ModerationVideoCut"
	DialogVideoCut              = "VideoCut"
	DialogOrganizationBrief     = "OrganizationBrief"
	DialogCategoryBrief         = "CategoryBrief"
	DialogEmployees             = "Employees"
	DialogProfile               = "Profile"
	DialogAlertView             = "AlertView"
)

var (
	StateIntroAgreement    = dialog.NewState(DialogIntro, "user_agreement")
	StateIntroAccessDenied = dialog.NewState(DialogIntro, "access_denied")

	StateMainMenu    = dialog.NewState(DialogMainMenu, "main_menu")
	StateContentMenu = dialog.NewState(DialogContentMenu, "content_menu")

	StateGenPubSelectCategory   = dialog.NewState(DialogGeneratePublication, "select_category")
	StateGenPubInputText        = dialog.NewState(DialogGeneratePublication, "input_text")
	StateGenPubGeneration       = dialog.NewState(DialogGeneratePublication, "generation")
	StateGenPubPreview          = dialog.NewState(DialogGeneratePublication, "preview")
	StateGenPubEditTextMenu     = dialog.NewState(DialogGeneratePublication, "edit_text_menu")
	StateGenPubRegeneratePrompt = dialog.NewState(DialogGeneratePublication, "regenerate_with_prompt")
	StateGenPubEditTitle        = dialog.NewState(DialogGeneratePublication, "edit_title")
	StateGenPubEditTags         = dialog.NewState(DialogGeneratePublication, "edit_tags")
	StateGenPubEditContent      = dialog.NewState(DialogGeneratePublication, "edit_content")
	StateGenPubImageMenu        = dialog.NewState(DialogGeneratePublication, "image_menu")
	StateGenPubImagePrompt      = dialog.NewState(DialogGeneratePublication, "generate_image_with_prompt")
	StateGenPubUploadImage      = dialog.NewState(DialogGeneratePublication, "upload_image")
	StateGenPubConfirmImage     = dialog.NewState(DialogGeneratePublication, "confirm_image")
	StateGenPubTextTooLong      = dialog.NewState(DialogGeneratePublication, "text_too_long")
	StateGenPubNetworkSelect    = dialog.NewState(DialogGeneratePublication, "social_network_select")
	StateGenPubSuccess          = dialog.NewState(DialogGeneratePublication, "success")

	StateModerationPubList    = dialog.NewState(DialogModerationPublication, "list")
	StateModerationPubComment = dialog.NewState(DialogModerationPublication, "reject_comment")

	StateModerationCutList    = dialog.NewState(DialogModerationVideoCut, "list")
	StateModerationCutComment = dialog.NewState(DialogModerationVideoCut, "reject_comment")

	StateVideoCutInput      = dialog.NewState(DialogVideoCut, "input_reference")
	StateVideoCutGenerating = dialog.NewState(DialogVideoCut, "generating")
	StateVideoCutList       = dialog.NewState(DialogVideoCut, "list")
	StateVideoCutPreview    = dialog.NewState(DialogVideoCut, "preview")
	StateVideoCutPublish    = dialog.NewState(DialogVideoCut, "publish")

	StateOrgBriefChat    = dialog.NewState(DialogOrganizationBrief, "chat")
	StateOrgBriefSuccess = dialog.NewState(DialogOrganizationBrief, "success")

	StateCategoryBriefChat    = dialog.NewState(DialogCategoryBrief, "chat")
	StateCategoryBriefSuccess = dialog.NewState(DialogCategoryBrief, "success")

	StateEmployeesList   = dialog.NewState(DialogEmployees, "list")
	StateEmployeesDetail = dialog.NewState(DialogEmployees, "detail")

	StateProfile = dialog.NewState(DialogProfile, "profile")

	StateAlertVizard      = dialog.NewState(DialogAlertView, "vizard")
	StateAlertPubApproved = dialog.NewState(DialogAlertView, "publication_approved")
	StateAlertPubRejected = dialog.NewState(DialogAlertView, "publication_rejected")
)
