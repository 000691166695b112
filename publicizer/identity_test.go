package publicizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/publicizer/metadata"
)

func TestMatch(t *testing.T) {
	target := metadata.NewModule("Game.dll")
	level := newType("Game", "Level", metadata.TypePublic)
	level.AddNestedType(newType("", "State", metadata.TypeNestedPrivate))
	target.AddType(level)
	target.AddType(newType("Game", "DebugOverlay", metadata.TypeNotPublic))
	player := newType("Game", "Player", metadata.TypePublic)
	player.AddMethod(newMethod("Update", metadata.MethodPrivate))
	target.AddType(player)

	mask := metadata.NewModule("Game.dll")
	maskLevel := newType("Game", "Level", metadata.TypePublic)
	maskLevel.AddNestedType(&metadata.Type{Name: "State", Methods: []*metadata.Method{}, Fields: []*metadata.Field{}})
	mask.AddType(maskLevel)
	maskPlayer := newType("Game", "Player", metadata.TypePublic)
	maskPlayer.AddMethod(newMethod("Update", metadata.MethodPublic))
	maskPlayer.AddMethod(newMethod("Render", metadata.MethodPublic))
	mask.AddType(maskPlayer)
	mask.AddType(newType("Game", "Removed", metadata.TypePublic))

	mapping := Match(target, mask)
	assert.Equal(t, 3, mapping.Len())

	var identities []TypeIdentity
	for _, pair := range mapping.Pairs {
		identities = append(identities, pair.Identity)
	}
	assert.Equal(t, []TypeIdentity{"Game.Level", "Game.Level+State", "Game.Player"}, identities)
	assert.Nil(t, mapping.Get("Game.DebugOverlay"))
	assert.Nil(t, mapping.Get("Game.Removed"))

	levelPair := mapping.Get("Game.Level")
	assert.Nil(t, levelPair.Methods, "mask type without method list does not constrain methods")
	assert.Nil(t, levelPair.Fields)

	statePair := mapping.Get("Game.Level+State")
	assert.NotNil(t, statePair.Methods)
	assert.Empty(t, statePair.Methods)
	assert.False(t, statePair.Methods.Allows("System.Void Game.Level+State::Tick()"))

	playerPair := mapping.Get("Game.Player")
	assert.Same(t, player, playerPair.Target)
	assert.Same(t, maskPlayer, playerPair.Mask)
	assert.True(t, playerPair.Methods.Allows("System.Void Game.Player::Update()"))
	assert.True(t, playerPair.Methods.Allows("System.Void Game.Player::Render()"))
	assert.False(t, playerPair.Methods.Allows("System.Void Game.Player::DebugDump()"))
}

func TestMemberSet_Allows(t *testing.T) {
	var absent MemberSet
	assert.True(t, absent.Allows("anything"))
	assert.False(t, MemberSet{}.Allows("anything"))
	assert.True(t, MemberSet{"a": true}.Allows("a"))
}

func TestExceptionTable_Lookup(t *testing.T) {
	table := ExceptionTable{}
	table.Add("Game.Player", "onGround", Exception{Reason: "Consider using OnGround instead", Severity: SeverityWarning})
	table.Add("Game.Player", "Die", Exception{Reason: "Use Kill", Severity: SeverityError})

	var testCases = []struct {
		description string
		typeName    TypeIdentity
		member      string
		expectOK    bool
		expect      Exception
	}{
		{description: "field entry", typeName: "Game.Player", member: "onGround", expectOK: true, expect: Exception{Reason: "Consider using OnGround instead", Severity: SeverityWarning}},
		{description: "method entry", typeName: "Game.Player", member: "Die", expectOK: true, expect: Exception{Reason: "Use Kill", Severity: SeverityError}},
		{description: "unknown member", typeName: "Game.Player", member: "Jump"},
		{description: "unknown type", typeName: "Game.Level", member: "onGround"},
		{description: "case sensitive", typeName: "Game.Player", member: "OnGround"},
	}
	for _, testCase := range testCases {
		actual, ok := table.Lookup(testCase.typeName, testCase.member)
		assert.Equal(t, testCase.expectOK, ok, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
	assert.Equal(t, 2, table.Len())
}
