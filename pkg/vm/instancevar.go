package vm

import (
	"github.com/OpenGMK/OpenGMK-sub000/pkg/asset"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/instance"
)

// Values reported by the read-only environment variables.
const (
	gamemakerVersion = 800
	osWin32          = 0
)

// instanceBound reports whether v is stored on an instance rather than on
// the room or the game.
func instanceBound(v gml.InstanceVariable) bool {
	return v <= gml.VarAlarm && v != gml.VarInstanceCount && v != gml.VarInstanceId
}

func (g *Game) refreshBBox(inst *instance.Instance) {
	mask, _ := g.Sprites.Get(inst.MaskSprite())
	inst.UpdateBBox(mask)
}

func (g *Game) getArgument(ctx *Context, n int) (gml.Value, error) {
	if v, ok := ctx.Argument(n); ok {
		return v, nil
	}
	if g.config.UninitArgsAreZero {
		return gml.Value{}, nil
	}
	return gml.Value{}, gml.NewUninitializedArgument(n)
}

// setArgument writes a positional argument. Under the lenient policy a write
// past the passed arguments extends them, and a write past the last slot is
// dropped.
func (g *Game) setArgument(ctx *Context, n int, v gml.Value) error {
	if n >= 0 && n < ctx.ArgumentCount {
		ctx.Arguments[n] = v
		return nil
	}
	if !g.config.UninitArgsAreZero {
		return gml.NewUninitializedArgument(n)
	}
	if n < 0 || n >= gml.MaxArgs {
		return nil
	}
	for i := ctx.ArgumentCount; i < n; i++ {
		ctx.Arguments[i] = gml.Value{}
	}
	ctx.Arguments[n] = v
	ctx.ArgumentCount = n + 1
	return nil
}

// nthInstanceID returns the id of the n-th instance in creation order, or
// noone.
func (g *Game) nthInstanceID(n uint32) int32 {
	it := g.Instances.IterByInsertion()
	for h, ok := it.Next(g.Instances); ok; h, ok = it.Next(g.Instances) {
		if n == 0 {
			return g.Instances.Get(h).ID
		}
		n--
	}
	return gml.NooneID
}

func str(v gml.Value) string {
	if v.IsString() {
		return v.Str()
	}
	return v.ToGMLString()
}

func fromReal(r gml.Real) gml.Value { return gml.FromReal(r) }

// getInstanceVar reads a built-in variable. inst may be nil when there is
// no current instance; only variables stored on an instance need one.
func (g *Game) getInstanceVar(inst *instance.Instance, v gml.InstanceVariable, index uint32, ctx *Context) (gml.Value, error) {
	if inst == nil && instanceBound(v) {
		return g.uninitVariable(v, index)
	}

	switch v {
	case gml.VarX:
		return fromReal(inst.X), nil
	case gml.VarY:
		return fromReal(inst.Y), nil
	case gml.VarXprevious:
		return fromReal(inst.Xprevious), nil
	case gml.VarYprevious:
		return fromReal(inst.Yprevious), nil
	case gml.VarXstart:
		return fromReal(inst.Xstart), nil
	case gml.VarYstart:
		return fromReal(inst.Ystart), nil
	case gml.VarHspeed:
		return fromReal(inst.Hspeed), nil
	case gml.VarVspeed:
		return fromReal(inst.Vspeed), nil
	case gml.VarDirection:
		return fromReal(inst.Direction), nil
	case gml.VarSpeed:
		return fromReal(inst.Speed), nil
	case gml.VarFriction:
		return fromReal(inst.Friction), nil
	case gml.VarGravity:
		return fromReal(inst.Gravity), nil
	case gml.VarGravityDirection:
		return fromReal(inst.GravityDirection), nil

	case gml.VarPathIndex:
		return gml.FromInt(inst.PathIndex), nil
	case gml.VarPathPosition:
		return fromReal(inst.PathPosition), nil
	case gml.VarPathPositionprevious:
		return fromReal(inst.PathPositionprevious), nil
	case gml.VarPathSpeed:
		return fromReal(inst.PathSpeed), nil
	case gml.VarPathScale:
		return fromReal(inst.PathScale), nil
	case gml.VarPathOrientation:
		return fromReal(inst.PathOrientation), nil
	case gml.VarPathEndaction:
		return gml.FromInt(inst.PathEndaction), nil

	case gml.VarObjectIndex:
		return gml.FromInt(inst.ObjectIndex), nil
	case gml.VarId:
		return gml.FromInt(inst.ID), nil
	case gml.VarSolid:
		return gml.FromBool(inst.Solid), nil
	case gml.VarPersistent:
		return gml.FromBool(inst.Persistent), nil
	case gml.VarMaskIndex:
		return gml.FromInt(inst.MaskIndex), nil
	case gml.VarInstanceCount:
		return gml.FromInt(g.Instances.Len()), nil
	case gml.VarInstanceId:
		return gml.FromInt(g.nthInstanceID(index)), nil

	case gml.VarTimelineIndex:
		return gml.FromInt(inst.TimelineIndex), nil
	case gml.VarTimelinePosition:
		return fromReal(inst.TimelinePosition), nil
	case gml.VarTimelineSpeed:
		return fromReal(inst.TimelineSpeed), nil
	case gml.VarTimelineRunning:
		return gml.FromBool(inst.TimelineRunning), nil
	case gml.VarTimelineLoop:
		return gml.FromBool(inst.TimelineLoop), nil

	case gml.VarVisible:
		return gml.FromBool(inst.Visible), nil
	case gml.VarSpriteIndex:
		return gml.FromInt(inst.SpriteIndex), nil
	case gml.VarSpriteWidth:
		if spr, ok := g.Sprites.Get(inst.SpriteIndex); ok {
			return fromReal(gml.Real(spr.Width) * inst.ImageXscale), nil
		}
		return gml.Value{}, nil
	case gml.VarSpriteHeight:
		if spr, ok := g.Sprites.Get(inst.SpriteIndex); ok {
			return fromReal(gml.Real(spr.Height) * inst.ImageYscale), nil
		}
		return gml.Value{}, nil
	case gml.VarSpriteXoffset:
		if spr, ok := g.Sprites.Get(inst.SpriteIndex); ok {
			return gml.FromInt(spr.OriginX), nil
		}
		return gml.Value{}, nil
	case gml.VarSpriteYoffset:
		if spr, ok := g.Sprites.Get(inst.SpriteIndex); ok {
			return gml.FromInt(spr.OriginY), nil
		}
		return gml.Value{}, nil
	case gml.VarImageNumber:
		if spr, ok := g.Sprites.Get(inst.SpriteIndex); ok {
			return gml.FromInt(spr.Frames), nil
		}
		return gml.Value{}, nil
	case gml.VarImageIndex:
		return fromReal(inst.ImageIndex), nil
	case gml.VarImageSpeed:
		return fromReal(inst.ImageSpeed), nil
	case gml.VarDepth:
		return fromReal(inst.Depth), nil
	case gml.VarImageXscale:
		return fromReal(inst.ImageXscale), nil
	case gml.VarImageYscale:
		return fromReal(inst.ImageYscale), nil
	case gml.VarImageAngle:
		return fromReal(inst.ImageAngle), nil
	case gml.VarImageAlpha:
		return fromReal(inst.ImageAlpha), nil
	case gml.VarImageBlend:
		return gml.FromInt(inst.ImageBlend), nil
	case gml.VarImageSingle:
		if inst.ImageSpeed != 0 {
			return gml.FromInt(-1), nil
		}
		return fromReal(inst.ImageIndex), nil

	case gml.VarBboxLeft:
		g.refreshBBox(inst)
		return gml.FromInt(inst.BBoxLeft), nil
	case gml.VarBboxRight:
		g.refreshBBox(inst)
		return gml.FromInt(inst.BBoxRight), nil
	case gml.VarBboxTop:
		g.refreshBBox(inst)
		return gml.FromInt(inst.BBoxTop), nil
	case gml.VarBboxBottom:
		g.refreshBBox(inst)
		return gml.FromInt(inst.BBoxBottom), nil

	case gml.VarAlarm:
		if t, ok := inst.Alarms[index]; ok {
			return gml.FromInt(t), nil
		}
		return gml.FromInt(-1), nil

	case gml.VarRoom:
		return gml.FromInt(g.Room.ID), nil
	case gml.VarRoomFirst:
		if len(g.RoomOrder) == 0 {
			return gml.FromInt(-1), nil
		}
		return gml.FromInt(g.RoomOrder[0]), nil
	case gml.VarRoomLast:
		if len(g.RoomOrder) == 0 {
			return gml.FromInt(-1), nil
		}
		return gml.FromInt(g.RoomOrder[len(g.RoomOrder)-1]), nil
	case gml.VarRoomWidth:
		return gml.FromInt(g.Room.Width), nil
	case gml.VarRoomHeight:
		return gml.FromInt(g.Room.Height), nil
	case gml.VarRoomCaption:
		return gml.FromString(g.Room.Caption), nil
	case gml.VarRoomSpeed:
		return gml.FromInt(g.Room.Speed), nil
	case gml.VarRoomPersistent:
		return gml.FromBool(g.Room.Persistent), nil
	case gml.VarTransitionKind:
		return gml.FromInt(g.TransitionKind), nil
	case gml.VarTransitionSteps:
		return gml.FromInt(g.TransitionSteps), nil

	case gml.VarBackgroundColor:
		return gml.FromInt(g.Room.BackgroundColour), nil
	case gml.VarBackgroundShowcolor:
		return gml.FromBool(g.Room.ShowColour), nil
	case gml.VarBackgroundVisible:
		return gml.FromBool(g.Room.Backgrounds[slot(index)].Visible), nil
	case gml.VarBackgroundForeground:
		return gml.FromBool(g.Room.Backgrounds[slot(index)].Foreground), nil
	case gml.VarBackgroundIndex:
		return gml.FromInt(g.Room.Backgrounds[slot(index)].Index), nil
	case gml.VarBackgroundX:
		return fromReal(g.Room.Backgrounds[slot(index)].X), nil
	case gml.VarBackgroundY:
		return fromReal(g.Room.Backgrounds[slot(index)].Y), nil
	case gml.VarBackgroundWidth:
		if bg, ok := g.Backgrounds.Get(g.Room.Backgrounds[slot(index)].Index); ok {
			return gml.FromInt(bg.Width), nil
		}
		return gml.Value{}, nil
	case gml.VarBackgroundHeight:
		if bg, ok := g.Backgrounds.Get(g.Room.Backgrounds[slot(index)].Index); ok {
			return gml.FromInt(bg.Height), nil
		}
		return gml.Value{}, nil
	case gml.VarBackgroundHtiled:
		return gml.FromBool(g.Room.Backgrounds[slot(index)].HTiled), nil
	case gml.VarBackgroundVtiled:
		return gml.FromBool(g.Room.Backgrounds[slot(index)].VTiled), nil
	case gml.VarBackgroundXscale:
		return fromReal(g.Room.Backgrounds[slot(index)].XScale), nil
	case gml.VarBackgroundYscale:
		return fromReal(g.Room.Backgrounds[slot(index)].YScale), nil
	case gml.VarBackgroundHspeed:
		return fromReal(g.Room.Backgrounds[slot(index)].HSpeed), nil
	case gml.VarBackgroundVspeed:
		return fromReal(g.Room.Backgrounds[slot(index)].VSpeed), nil
	case gml.VarBackgroundBlend:
		return gml.FromInt(g.Room.Backgrounds[slot(index)].Blend), nil
	case gml.VarBackgroundAlpha:
		return fromReal(g.Room.Backgrounds[slot(index)].Alpha), nil

	case gml.VarViewEnabled:
		return gml.FromBool(g.Room.ViewsEnabled), nil
	case gml.VarViewCurrent:
		return gml.FromInt(g.Room.ViewCurrent), nil
	case gml.VarViewVisible:
		return gml.FromBool(g.Room.Views[slot(index)].Visible), nil
	case gml.VarViewXview:
		return fromReal(g.Room.Views[slot(index)].XView), nil
	case gml.VarViewYview:
		return fromReal(g.Room.Views[slot(index)].YView), nil
	case gml.VarViewWview:
		return gml.FromInt(g.Room.Views[slot(index)].WView), nil
	case gml.VarViewHview:
		return gml.FromInt(g.Room.Views[slot(index)].HView), nil
	case gml.VarViewXport:
		return gml.FromInt(g.Room.Views[slot(index)].XPort), nil
	case gml.VarViewYport:
		return gml.FromInt(g.Room.Views[slot(index)].YPort), nil
	case gml.VarViewWport:
		return gml.FromInt(g.Room.Views[slot(index)].WPort), nil
	case gml.VarViewHport:
		return gml.FromInt(g.Room.Views[slot(index)].HPort), nil
	case gml.VarViewAngle:
		return fromReal(g.Room.Views[slot(index)].Angle), nil
	case gml.VarViewHborder:
		return gml.FromInt(g.Room.Views[slot(index)].HBorder), nil
	case gml.VarViewVborder:
		return gml.FromInt(g.Room.Views[slot(index)].VBorder), nil
	case gml.VarViewHspeed:
		return gml.FromInt(g.Room.Views[slot(index)].HSpeed), nil
	case gml.VarViewVspeed:
		return gml.FromInt(g.Room.Views[slot(index)].VSpeed), nil
	case gml.VarViewObject:
		return gml.FromInt(g.Room.Views[slot(index)].Object), nil

	case gml.VarScore:
		return gml.FromInt(g.Score), nil
	case gml.VarLives:
		return gml.FromInt(g.Lives), nil
	case gml.VarHealth:
		return fromReal(g.Health), nil
	case gml.VarShowScore:
		return gml.FromBool(g.ShowScore), nil
	case gml.VarShowLives:
		return gml.FromBool(g.ShowLives), nil
	case gml.VarShowHealth:
		return gml.FromBool(g.ShowHealth), nil
	case gml.VarCaptionScore:
		return gml.FromString(g.CaptionScore), nil
	case gml.VarCaptionLives:
		return gml.FromString(g.CaptionLives), nil
	case gml.VarCaptionHealth:
		return gml.FromString(g.CaptionHealth), nil

	case gml.VarFps:
		return gml.FromInt(g.FPS), nil
	case gml.VarCurrentTime:
		return gml.FromInt(g.clock.millis()), nil
	case gml.VarCurrentYear:
		return gml.FromInt(g.Now().Year()), nil
	case gml.VarCurrentMonth:
		return gml.FromInt(int(g.Now().Month())), nil
	case gml.VarCurrentDay:
		return gml.FromInt(g.Now().Day()), nil
	case gml.VarCurrentWeekday:
		return gml.FromInt(int(g.Now().Weekday())), nil
	case gml.VarCurrentHour:
		return gml.FromInt(g.Now().Hour()), nil
	case gml.VarCurrentMinute:
		return gml.FromInt(g.Now().Minute()), nil
	case gml.VarCurrentSecond:
		return gml.FromInt(g.Now().Second()), nil

	case gml.VarEventType:
		return gml.FromInt(ctx.EventType), nil
	case gml.VarEventNumber:
		return gml.FromInt(ctx.EventNumber), nil
	case gml.VarEventObject:
		return gml.FromInt(ctx.EventObject), nil
	case gml.VarEventAction:
		return gml.FromInt(ctx.EventAction), nil

	case gml.VarSecureMode:
		return gml.FromBool(false), nil
	case gml.VarDebugMode:
		return gml.FromBool(g.DebugMode), nil
	case gml.VarErrorOccurred:
		return gml.FromBool(g.ErrorOccurred), nil
	case gml.VarErrorLast:
		return gml.FromString(g.ErrorLast), nil
	case gml.VarGamemakerRegistered, gml.VarGamemakerPro:
		return gml.FromBool(true), nil
	case gml.VarGamemakerVersion:
		return gml.FromInt(gamemakerVersion), nil
	case gml.VarOsType:
		return gml.FromInt(osWin32), nil
	case gml.VarTempDirectory:
		return gml.FromString(gml.EncodeANSI(g.TempDirectory)), nil
	case gml.VarProgramDirectory:
		return gml.FromString(gml.EncodeANSI(g.ProgramDirectory)), nil
	case gml.VarWorkingDirectory:
		return gml.FromString(gml.EncodeANSI(g.WorkingDirectory)), nil
	case gml.VarGameId:
		return gml.FromInt(g.GameID), nil
	case gml.VarCursorSprite:
		return gml.FromInt(g.CursorSprite), nil

	case gml.VarMouseX:
		return gml.FromFloat(g.Input.MouseX), nil
	case gml.VarMouseY:
		return gml.FromFloat(g.Input.MouseY), nil
	case gml.VarMouseButton:
		return gml.FromInt(g.Input.MouseButton), nil
	case gml.VarMouseLastbutton:
		return gml.FromInt(g.Input.MouseLastButton), nil
	case gml.VarKeyboardKey:
		return gml.FromInt(g.Input.KeyboardKey), nil
	case gml.VarKeyboardLastkey:
		return gml.FromInt(g.Input.KeyboardLastKey), nil
	case gml.VarKeyboardLastchar:
		return gml.FromString(g.Input.KeyboardLastChar), nil
	case gml.VarKeyboardString:
		return gml.FromString(g.Input.KeyboardString), nil

	case gml.VarArgumentRelative:
		return gml.FromBool(ctx.Relative), nil
	case gml.VarArgumentCount:
		return gml.FromInt(ctx.ArgumentCount), nil
	case gml.VarArgument:
		return g.getArgument(ctx, int(index))
	}

	if n := v.ArgumentIndex(); n >= 0 {
		return g.getArgument(ctx, n)
	}
	return g.uninitVariable(v, index)
}

// setInstanceVar writes a built-in variable. Writes to instance variables
// with no instance are discarded.
func (g *Game) setInstanceVar(inst *instance.Instance, v gml.InstanceVariable, index uint32, value gml.Value, ctx *Context) error {
	if v.ReadOnly() {
		return gml.NewReadOnlyVariable(v)
	}
	if inst == nil && instanceBound(v) {
		return nil
	}
	r := value.Real()

	switch v {
	case gml.VarX:
		inst.SetX(r)
	case gml.VarY:
		inst.SetY(r)
	case gml.VarXprevious:
		inst.Xprevious = r
	case gml.VarYprevious:
		inst.Yprevious = r
	case gml.VarXstart:
		inst.Xstart = r
	case gml.VarYstart:
		inst.Ystart = r
	case gml.VarHspeed:
		inst.SetHVSpeed(r, inst.Vspeed)
	case gml.VarVspeed:
		inst.SetHVSpeed(inst.Hspeed, r)
	case gml.VarDirection:
		inst.SetSpeedDirection(inst.Speed, r)
	case gml.VarSpeed:
		inst.SetSpeedDirection(r, inst.Direction)
	case gml.VarFriction:
		inst.Friction = r
	case gml.VarGravity:
		inst.Gravity = r
	case gml.VarGravityDirection:
		inst.GravityDirection = r

	case gml.VarPathPosition:
		inst.PathPosition = min(max(r, 0), 1)
	case gml.VarPathPositionprevious:
		inst.PathPositionprevious = r
	case gml.VarPathSpeed:
		inst.PathSpeed = r
	case gml.VarPathScale:
		inst.PathScale = r
	case gml.VarPathOrientation:
		inst.PathOrientation = r
	case gml.VarPathEndaction:
		inst.PathEndaction = value.Round()

	case gml.VarSolid:
		inst.Solid = value.Truthy()
	case gml.VarPersistent:
		inst.Persistent = value.Truthy()
	case gml.VarMaskIndex:
		inst.SetMaskIndex(value.Round())

	case gml.VarTimelineIndex:
		inst.TimelineIndex = value.Round()
	case gml.VarTimelinePosition:
		inst.TimelinePosition = r
	case gml.VarTimelineSpeed:
		inst.TimelineSpeed = r
	case gml.VarTimelineRunning:
		inst.TimelineRunning = value.Truthy()
	case gml.VarTimelineLoop:
		inst.TimelineLoop = value.Truthy()

	case gml.VarVisible:
		inst.Visible = value.Truthy()
	case gml.VarSpriteIndex:
		id := value.Round()
		spr, _ := g.Sprites.Get(id)
		inst.SetSpriteIndex(id, spr)
	case gml.VarImageIndex:
		inst.ImageIndex = r
	case gml.VarImageSpeed:
		inst.ImageSpeed = r
	case gml.VarDepth:
		inst.Depth = r
	case gml.VarImageXscale:
		inst.SetImageXscale(r)
	case gml.VarImageYscale:
		inst.SetImageYscale(r)
	case gml.VarImageAngle:
		inst.SetImageAngle(r)
	case gml.VarImageAlpha:
		inst.ImageAlpha = r
	case gml.VarImageBlend:
		inst.ImageBlend = value.Round()
	case gml.VarImageSingle:
		if r < 0 {
			inst.ImageSpeed = 1
		} else {
			inst.ImageIndex = r
			inst.ImageSpeed = 0
		}

	case gml.VarAlarm:
		inst.Alarms[index] = value.Round()

	case gml.VarRoom:
		return g.RequestRoomChange(value.Round())
	case gml.VarRoomCaption:
		g.Room.Caption = str(value)
	case gml.VarRoomSpeed:
		speed := value.Round()
		if speed <= 0 {
			return gml.NewInvalidRoomSpeed(speed)
		}
		g.Room.Speed = speed
	case gml.VarRoomPersistent:
		g.Room.Persistent = value.Truthy()
	case gml.VarTransitionKind:
		g.TransitionKind = value.Round()
	case gml.VarTransitionSteps:
		g.TransitionSteps = value.Round()

	case gml.VarBackgroundColor:
		g.Room.BackgroundColour = uint32(value.Round())
	case gml.VarBackgroundShowcolor:
		g.Room.ShowColour = value.Truthy()
	case gml.VarBackgroundVisible:
		g.Room.Backgrounds[slot(index)].Visible = value.Truthy()
	case gml.VarBackgroundForeground:
		g.Room.Backgrounds[slot(index)].Foreground = value.Truthy()
	case gml.VarBackgroundIndex:
		g.Room.Backgrounds[slot(index)].Index = value.Round()
	case gml.VarBackgroundX:
		g.Room.Backgrounds[slot(index)].X = r
	case gml.VarBackgroundY:
		g.Room.Backgrounds[slot(index)].Y = r
	case gml.VarBackgroundHtiled:
		g.Room.Backgrounds[slot(index)].HTiled = value.Truthy()
	case gml.VarBackgroundVtiled:
		g.Room.Backgrounds[slot(index)].VTiled = value.Truthy()
	case gml.VarBackgroundXscale:
		g.Room.Backgrounds[slot(index)].XScale = r
	case gml.VarBackgroundYscale:
		g.Room.Backgrounds[slot(index)].YScale = r
	case gml.VarBackgroundHspeed:
		g.Room.Backgrounds[slot(index)].HSpeed = r
	case gml.VarBackgroundVspeed:
		g.Room.Backgrounds[slot(index)].VSpeed = r
	case gml.VarBackgroundBlend:
		g.Room.Backgrounds[slot(index)].Blend = value.Round()
	case gml.VarBackgroundAlpha:
		g.Room.Backgrounds[slot(index)].Alpha = r

	case gml.VarViewEnabled:
		g.Room.ViewsEnabled = value.Truthy()
	case gml.VarViewVisible:
		g.Room.Views[slot(index)].Visible = value.Truthy()
	case gml.VarViewXview:
		g.Room.Views[slot(index)].XView = r
	case gml.VarViewYview:
		g.Room.Views[slot(index)].YView = r
	case gml.VarViewWview:
		g.Room.Views[slot(index)].WView = value.Round()
	case gml.VarViewHview:
		g.Room.Views[slot(index)].HView = value.Round()
	case gml.VarViewXport:
		g.Room.Views[slot(index)].XPort = value.Round()
	case gml.VarViewYport:
		g.Room.Views[slot(index)].YPort = value.Round()
	case gml.VarViewWport:
		g.Room.Views[slot(index)].WPort = value.Round()
	case gml.VarViewHport:
		g.Room.Views[slot(index)].HPort = value.Round()
	case gml.VarViewAngle:
		g.Room.Views[slot(index)].Angle = r
	case gml.VarViewHborder:
		g.Room.Views[slot(index)].HBorder = value.Round()
	case gml.VarViewVborder:
		g.Room.Views[slot(index)].VBorder = value.Round()
	case gml.VarViewHspeed:
		g.Room.Views[slot(index)].HSpeed = value.Round()
	case gml.VarViewVspeed:
		g.Room.Views[slot(index)].VSpeed = value.Round()
	case gml.VarViewObject:
		g.Room.Views[slot(index)].Object = value.Round()

	case gml.VarScore:
		g.Score = value.Round()
	case gml.VarLives:
		old := g.Lives
		g.Lives = value.Round()
		if old > 0 && g.Lives <= 0 {
			return g.RunOtherEvent(asset.OtherNoMoreLives)
		}
	case gml.VarHealth:
		old := g.Health
		g.Health = r
		if old > 0 && g.Health <= 0 {
			return g.RunOtherEvent(asset.OtherNoMoreHealth)
		}
	case gml.VarShowScore:
		g.ShowScore = value.Truthy()
	case gml.VarShowLives:
		g.ShowLives = value.Truthy()
	case gml.VarShowHealth:
		g.ShowHealth = value.Truthy()
	case gml.VarCaptionScore:
		g.CaptionScore = str(value)
	case gml.VarCaptionLives:
		g.CaptionLives = str(value)
	case gml.VarCaptionHealth:
		g.CaptionHealth = str(value)

	case gml.VarErrorOccurred:
		g.ErrorOccurred = value.Truthy()
	case gml.VarErrorLast:
		g.ErrorLast = str(value)
	case gml.VarCursorSprite:
		g.CursorSprite = value.Round()

	case gml.VarMouseButton:
		g.Input.MouseButton = value.Round()
	case gml.VarMouseLastbutton:
		g.Input.MouseLastButton = value.Round()
	case gml.VarKeyboardKey:
		g.Input.KeyboardKey = value.Round()
	case gml.VarKeyboardLastkey:
		g.Input.KeyboardLastKey = value.Round()
	case gml.VarKeyboardLastchar:
		g.Input.KeyboardLastChar = str(value)
	case gml.VarKeyboardString:
		g.Input.KeyboardString = str(value)

	case gml.VarArgument:
		return g.setArgument(ctx, int(index), value)

	default:
		if n := v.ArgumentIndex(); n >= 0 {
			return g.setArgument(ctx, n, value)
		}
	}
	return nil
}
