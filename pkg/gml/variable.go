package gml

import "strings"

// InstanceVariable is a built-in variable. The front end resolves names to
// these ids; the VM dispatches on them in one table per direction.
type InstanceVariable uint16

const (
	// Instance position and motion
	VarX InstanceVariable = iota
	VarY
	VarXprevious
	VarYprevious
	VarXstart
	VarYstart
	VarHspeed
	VarVspeed
	VarDirection
	VarSpeed
	VarFriction
	VarGravity
	VarGravityDirection

	// Paths
	VarPathIndex
	VarPathPosition
	VarPathPositionprevious
	VarPathSpeed
	VarPathScale
	VarPathOrientation
	VarPathEndaction

	// Identity
	VarObjectIndex
	VarId
	VarSolid
	VarPersistent
	VarMaskIndex
	VarInstanceCount
	VarInstanceId

	// Timelines
	VarTimelineIndex
	VarTimelinePosition
	VarTimelineSpeed
	VarTimelineRunning
	VarTimelineLoop

	// Sprite and image state
	VarVisible
	VarSpriteIndex
	VarSpriteWidth
	VarSpriteHeight
	VarSpriteXoffset
	VarSpriteYoffset
	VarImageNumber
	VarImageIndex
	VarImageSpeed
	VarDepth
	VarImageXscale
	VarImageYscale
	VarImageAngle
	VarImageAlpha
	VarImageBlend
	VarImageSingle
	VarBboxLeft
	VarBboxRight
	VarBboxTop
	VarBboxBottom
	VarAlarm

	// Room
	VarRoom
	VarRoomFirst
	VarRoomLast
	VarRoomWidth
	VarRoomHeight
	VarRoomCaption
	VarRoomSpeed
	VarRoomPersistent
	VarTransitionKind
	VarTransitionSteps

	// Background layers
	VarBackgroundColor
	VarBackgroundShowcolor
	VarBackgroundVisible
	VarBackgroundForeground
	VarBackgroundIndex
	VarBackgroundX
	VarBackgroundY
	VarBackgroundWidth
	VarBackgroundHeight
	VarBackgroundHtiled
	VarBackgroundVtiled
	VarBackgroundXscale
	VarBackgroundYscale
	VarBackgroundHspeed
	VarBackgroundVspeed
	VarBackgroundBlend
	VarBackgroundAlpha

	// Views
	VarViewEnabled
	VarViewCurrent
	VarViewVisible
	VarViewXview
	VarViewYview
	VarViewWview
	VarViewHview
	VarViewXport
	VarViewYport
	VarViewWport
	VarViewHport
	VarViewAngle
	VarViewHborder
	VarViewVborder
	VarViewHspeed
	VarViewVspeed
	VarViewObject

	// Game
	VarScore
	VarLives
	VarHealth
	VarShowScore
	VarShowLives
	VarShowHealth
	VarCaptionScore
	VarCaptionLives
	VarCaptionHealth
	VarFps
	VarCurrentTime
	VarCurrentYear
	VarCurrentMonth
	VarCurrentDay
	VarCurrentWeekday
	VarCurrentHour
	VarCurrentMinute
	VarCurrentSecond
	VarEventType
	VarEventNumber
	VarEventObject
	VarEventAction
	VarSecureMode
	VarDebugMode
	VarErrorOccurred
	VarErrorLast
	VarGamemakerRegistered
	VarGamemakerPro
	VarGamemakerVersion
	VarOsType
	VarTempDirectory
	VarProgramDirectory
	VarWorkingDirectory
	VarGameId
	VarCursorSprite

	// Input
	VarMouseX
	VarMouseY
	VarMouseButton
	VarMouseLastbutton
	VarKeyboardKey
	VarKeyboardLastkey
	VarKeyboardLastchar
	VarKeyboardString

	// Arguments
	VarArgumentRelative
	VarArgumentCount
	VarArgument
	VarArgument0
	VarArgument1
	VarArgument2
	VarArgument3
	VarArgument4
	VarArgument5
	VarArgument6
	VarArgument7
	VarArgument8
	VarArgument9
	VarArgument10
	VarArgument11
	VarArgument12
	VarArgument13
	VarArgument14
	VarArgument15

	numInstanceVariables
)

type variableInfo struct {
	name     string
	readOnly bool
}

var variableTable = [numInstanceVariables]variableInfo{
	VarX:                    {"x", false},
	VarY:                    {"y", false},
	VarXprevious:            {"xprevious", false},
	VarYprevious:            {"yprevious", false},
	VarXstart:               {"xstart", false},
	VarYstart:               {"ystart", false},
	VarHspeed:               {"hspeed", false},
	VarVspeed:               {"vspeed", false},
	VarDirection:            {"direction", false},
	VarSpeed:                {"speed", false},
	VarFriction:             {"friction", false},
	VarGravity:              {"gravity", false},
	VarGravityDirection:     {"gravity_direction", false},
	VarPathIndex:            {"path_index", true},
	VarPathPosition:         {"path_position", false},
	VarPathPositionprevious: {"path_positionprevious", false},
	VarPathSpeed:            {"path_speed", false},
	VarPathScale:            {"path_scale", false},
	VarPathOrientation:      {"path_orientation", false},
	VarPathEndaction:        {"path_endaction", false},
	VarObjectIndex:          {"object_index", true},
	VarId:                   {"id", true},
	VarSolid:                {"solid", false},
	VarPersistent:           {"persistent", false},
	VarMaskIndex:            {"mask_index", false},
	VarInstanceCount:        {"instance_count", true},
	VarInstanceId:           {"instance_id", true},
	VarTimelineIndex:        {"timeline_index", false},
	VarTimelinePosition:     {"timeline_position", false},
	VarTimelineSpeed:        {"timeline_speed", false},
	VarTimelineRunning:      {"timeline_running", false},
	VarTimelineLoop:         {"timeline_loop", false},
	VarVisible:              {"visible", false},
	VarSpriteIndex:          {"sprite_index", false},
	VarSpriteWidth:          {"sprite_width", true},
	VarSpriteHeight:         {"sprite_height", true},
	VarSpriteXoffset:        {"sprite_xoffset", true},
	VarSpriteYoffset:        {"sprite_yoffset", true},
	VarImageNumber:          {"image_number", true},
	VarImageIndex:           {"image_index", false},
	VarImageSpeed:           {"image_speed", false},
	VarDepth:                {"depth", false},
	VarImageXscale:          {"image_xscale", false},
	VarImageYscale:          {"image_yscale", false},
	VarImageAngle:           {"image_angle", false},
	VarImageAlpha:           {"image_alpha", false},
	VarImageBlend:           {"image_blend", false},
	VarImageSingle:          {"image_single", false},
	VarBboxLeft:             {"bbox_left", true},
	VarBboxRight:            {"bbox_right", true},
	VarBboxTop:              {"bbox_top", true},
	VarBboxBottom:           {"bbox_bottom", true},
	VarAlarm:                {"alarm", false},
	VarRoom:                 {"room", false},
	VarRoomFirst:            {"room_first", true},
	VarRoomLast:             {"room_last", true},
	VarRoomWidth:            {"room_width", true},
	VarRoomHeight:           {"room_height", true},
	VarRoomCaption:          {"room_caption", false},
	VarRoomSpeed:            {"room_speed", false},
	VarRoomPersistent:       {"room_persistent", false},
	VarTransitionKind:       {"transition_kind", false},
	VarTransitionSteps:      {"transition_steps", false},
	VarBackgroundColor:      {"background_color", false},
	VarBackgroundShowcolor:  {"background_showcolor", false},
	VarBackgroundVisible:    {"background_visible", false},
	VarBackgroundForeground: {"background_foreground", false},
	VarBackgroundIndex:      {"background_index", false},
	VarBackgroundX:          {"background_x", false},
	VarBackgroundY:          {"background_y", false},
	VarBackgroundWidth:      {"background_width", true},
	VarBackgroundHeight:     {"background_height", true},
	VarBackgroundHtiled:     {"background_htiled", false},
	VarBackgroundVtiled:     {"background_vtiled", false},
	VarBackgroundXscale:     {"background_xscale", false},
	VarBackgroundYscale:     {"background_yscale", false},
	VarBackgroundHspeed:     {"background_hspeed", false},
	VarBackgroundVspeed:     {"background_vspeed", false},
	VarBackgroundBlend:      {"background_blend", false},
	VarBackgroundAlpha:      {"background_alpha", false},
	VarViewEnabled:          {"view_enabled", false},
	VarViewCurrent:          {"view_current", true},
	VarViewVisible:          {"view_visible", false},
	VarViewXview:            {"view_xview", false},
	VarViewYview:            {"view_yview", false},
	VarViewWview:            {"view_wview", false},
	VarViewHview:            {"view_hview", false},
	VarViewXport:            {"view_xport", false},
	VarViewYport:            {"view_yport", false},
	VarViewWport:            {"view_wport", false},
	VarViewHport:            {"view_hport", false},
	VarViewAngle:            {"view_angle", false},
	VarViewHborder:          {"view_hborder", false},
	VarViewVborder:          {"view_vborder", false},
	VarViewHspeed:           {"view_hspeed", false},
	VarViewVspeed:           {"view_vspeed", false},
	VarViewObject:           {"view_object", false},
	VarScore:                {"score", false},
	VarLives:                {"lives", false},
	VarHealth:               {"health", false},
	VarShowScore:            {"show_score", false},
	VarShowLives:            {"show_lives", false},
	VarShowHealth:           {"show_health", false},
	VarCaptionScore:         {"caption_score", false},
	VarCaptionLives:         {"caption_lives", false},
	VarCaptionHealth:        {"caption_health", false},
	VarFps:                  {"fps", true},
	VarCurrentTime:          {"current_time", true},
	VarCurrentYear:          {"current_year", true},
	VarCurrentMonth:         {"current_month", true},
	VarCurrentDay:           {"current_day", true},
	VarCurrentWeekday:       {"current_weekday", true},
	VarCurrentHour:          {"current_hour", true},
	VarCurrentMinute:        {"current_minute", true},
	VarCurrentSecond:        {"current_second", true},
	VarEventType:            {"event_type", true},
	VarEventNumber:          {"event_number", true},
	VarEventObject:          {"event_object", true},
	VarEventAction:          {"event_action", true},
	VarSecureMode:           {"secure_mode", true},
	VarDebugMode:            {"debug_mode", true},
	VarErrorOccurred:        {"error_occurred", false},
	VarErrorLast:            {"error_last", false},
	VarGamemakerRegistered:  {"gamemaker_registered", true},
	VarGamemakerPro:         {"gamemaker_pro", true},
	VarGamemakerVersion:     {"gamemaker_version", true},
	VarOsType:               {"os_type", true},
	VarTempDirectory:        {"temp_directory", true},
	VarProgramDirectory:     {"program_directory", true},
	VarWorkingDirectory:     {"working_directory", true},
	VarGameId:               {"game_id", true},
	VarCursorSprite:         {"cursor_sprite", false},
	VarMouseX:               {"mouse_x", true},
	VarMouseY:               {"mouse_y", true},
	VarMouseButton:          {"mouse_button", false},
	VarMouseLastbutton:      {"mouse_lastbutton", false},
	VarKeyboardKey:          {"keyboard_key", false},
	VarKeyboardLastkey:      {"keyboard_lastkey", false},
	VarKeyboardLastchar:     {"keyboard_lastchar", false},
	VarKeyboardString:       {"keyboard_string", false},
	VarArgumentRelative:     {"argument_relative", true},
	VarArgumentCount:        {"argument_count", true},
	VarArgument:             {"argument", false},
	VarArgument0:            {"argument0", false},
	VarArgument1:            {"argument1", false},
	VarArgument2:            {"argument2", false},
	VarArgument3:            {"argument3", false},
	VarArgument4:            {"argument4", false},
	VarArgument5:            {"argument5", false},
	VarArgument6:            {"argument6", false},
	VarArgument7:            {"argument7", false},
	VarArgument8:            {"argument8", false},
	VarArgument9:            {"argument9", false},
	VarArgument10:           {"argument10", false},
	VarArgument11:           {"argument11", false},
	VarArgument12:           {"argument12", false},
	VarArgument13:           {"argument13", false},
	VarArgument14:           {"argument14", false},
	VarArgument15:           {"argument15", false},
}

var variablesByName = func() map[string]InstanceVariable {
	m := make(map[string]InstanceVariable, len(variableTable)+1)
	for i, info := range variableTable {
		m[info.name] = InstanceVariable(i)
	}
	m["background_colour"] = VarBackgroundColor
	return m
}()

func (v InstanceVariable) String() string {
	if v < numInstanceVariables {
		return variableTable[v].name
	}
	return "<unknown variable>"
}

// ReadOnly reports whether assignments to v are rejected.
func (v InstanceVariable) ReadOnly() bool {
	return v < numInstanceVariables && variableTable[v].readOnly
}

// ArgumentIndex returns n for argumentN, or -1 for any other variable.
func (v InstanceVariable) ArgumentIndex() int {
	if v >= VarArgument0 && v <= VarArgument15 {
		return int(v - VarArgument0)
	}
	return -1
}

// LookupVariable resolves a built-in variable by name, case-insensitively.
func LookupVariable(name string) (InstanceVariable, bool) {
	v, ok := variablesByName[strings.ToLower(name)]
	return v, ok
}

// NumInstanceVariables is the number of built-in variables.
const NumInstanceVariables = int(numInstanceVariables)
