package ast

import (
	"fmt"
	"strings"
)

// Print renders n as an indented tree, the form the CLI's `-d`/`--debug`
// flag dumps before evaluation. Grounded on the teacher's pkg/printer
// indentation-writer idiom, adapted to walk the tagged Node instead of
// type-switching over an interface.
func Print(n *Node) string {
	var sb strings.Builder
	printNode(&sb, n, 0)
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func printNode(sb *strings.Builder, n *Node, depth int) {
	if n == nil {
		indent(sb, depth)
		sb.WriteString("<nil>\n")
		return
	}

	indent(sb, depth)

	switch n.Kind {
	case Program:
		sb.WriteString("Program\n")
		for _, s := range n.Stmts {
			printNode(sb, s, depth+1)
		}
	case ExpressionStmt:
		fmt.Fprintf(sb, "ExpressionStmt(noOp=%v break=%v continue=%v)\n", n.NoOpFlag, n.IsBreak, n.IsContinue)
		if n.Expr != nil {
			printNode(sb, n.Expr, depth+1)
		}
	case IntLiteral:
		fmt.Fprintf(sb, "IntLiteral(%d)\n", n.IntVal)
	case FloatLiteral:
		fmt.Fprintf(sb, "FloatLiteral(%g)\n", n.FloatVal)
	case StrLiteral:
		fmt.Fprintf(sb, "StrLiteral(%q)\n", n.StrVal)
	case BoolLiteral:
		fmt.Fprintf(sb, "BoolLiteral(%v)\n", n.BoolVal)
	case VecLiteral:
		sb.WriteString("VecLiteral\n")
		for _, e := range n.Elems {
			printNode(sb, e, depth+1)
		}
	case Variable:
		if n.Value != nil {
			fmt.Fprintf(sb, "Variable(%s, assign)\n", n.Name)
			printNode(sb, n.Value, depth+1)
		} else {
			fmt.Fprintf(sb, "Variable(%s)\n", n.Name)
		}
	case UnaryOp:
		fmt.Fprintf(sb, "UnaryOp(%s postfix=%v)\n", n.Op, n.Postfix)
		printNode(sb, n.Operand, depth+1)
	case BinaryOp:
		fmt.Fprintf(sb, "BinaryOp(%s)\n", n.Op)
		printNode(sb, n.Left, depth+1)
		printNode(sb, n.Right, depth+1)
	case IfLiteral:
		sb.WriteString("IfLiteral\n")
		printNode(sb, n.Cond, depth+1)
		indent(sb, depth+1)
		sb.WriteString("Then\n")
		for _, s := range n.Then {
			printNode(sb, s, depth+2)
		}
		if len(n.Else) > 0 {
			indent(sb, depth+1)
			sb.WriteString("Else\n")
			for _, s := range n.Else {
				printNode(sb, s, depth+2)
			}
		}
	case WhileLiteral:
		sb.WriteString("WhileLiteral\n")
		printNode(sb, n.Cond, depth+1)
		for _, s := range n.Body {
			printNode(sb, s, depth+1)
		}
	case ForLiteral:
		fmt.Fprintf(sb, "ForLiteral(%s)\n", n.VarName)
		printNode(sb, n.Iter, depth+1)
		for _, s := range n.Body {
			printNode(sb, s, depth+1)
		}
	case FunctionCall:
		fmt.Fprintf(sb, "FunctionCall(%s)\n", n.Name)
		for _, a := range n.Args {
			printNode(sb, a, depth+1)
		}
	case ReturnLiteral:
		sb.WriteString("ReturnLiteral\n")
		if n.Value != nil {
			printNode(sb, n.Value, depth+1)
		}
	case FunctionLiteral:
		fmt.Fprintf(sb, "FunctionLiteral(%s, params=%v, inline=%v)\n", n.Name, n.Params, n.Inline)
		for _, s := range n.Body {
			printNode(sb, s, depth+1)
		}
	case ClassLiteral:
		fmt.Fprintf(sb, "ClassLiteral(%s, params=%v)\n", n.Name, n.Params)
		for _, s := range n.Body {
			printNode(sb, s, depth+1)
		}
	case NoOp:
		sb.WriteString("NoOp\n")
	case TypeInt, TypeFloat, TypeStr, TypeBool, TypeVec:
		fmt.Fprintf(sb, "%s\n", n.Kind)
	default:
		fmt.Fprintf(sb, "%s\n", n.Kind)
	}
}
